package standings

import "testing"

func TestFormatPointsAvg(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		points int
		played int
		want   string
	}{
		{name: "zero games", points: 0, played: 0, want: "0.00"},
		{name: "negative games", points: 10, played: -1, want: "0.00"},
		{name: "exact division", points: 51, played: 20, want: "2.55"},
		{name: "rounded", points: 10, played: 3, want: "3.33"},
		{name: "single game", points: 3, played: 1, want: "3.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatPointsAvg(tc.points, tc.played); got != tc.want {
				t.Fatalf("FormatPointsAvg(%d, %d) = %q, want %q", tc.points, tc.played, got, tc.want)
			}
		})
	}
}

func TestTeamRecordRates(t *testing.T) {
	t.Parallel()

	r := TeamRecord{Played: 20, Won: 16, Draw: 3, GoalsFor: 48, GoalsAgainst: 15, PointsAvg: "2.55"}

	if got := r.WinRate(); got != 0.8 {
		t.Fatalf("WinRate = %v, want 0.8", got)
	}
	if got := r.DrawRate(); got != 0.15 {
		t.Fatalf("DrawRate = %v, want 0.15", got)
	}
	if got := r.GoalsForAvg(); got != 2.4 {
		t.Fatalf("GoalsForAvg = %v, want 2.4", got)
	}
	if got := r.GoalsAgainstAvg(); got != 0.75 {
		t.Fatalf("GoalsAgainstAvg = %v, want 0.75", got)
	}
	if got := r.PointsAvgValue(); got != 2.55 {
		t.Fatalf("PointsAvgValue = %v, want 2.55", got)
	}
}

func TestTeamRecordRatesZeroPlayed(t *testing.T) {
	t.Parallel()

	r := TeamRecord{Won: 5, GoalsFor: 9, PointsAvg: "not-a-number"}

	if got := r.WinRate(); got != 0 {
		t.Fatalf("WinRate with zero played = %v, want 0", got)
	}
	if got := r.GoalsForAvg(); got != 0 {
		t.Fatalf("GoalsForAvg with zero played = %v, want 0", got)
	}
	if got := r.PointsAvgValue(); got != 0 {
		t.Fatalf("PointsAvgValue with bad input = %v, want 0", got)
	}
}

func TestFindByTeamID(t *testing.T) {
	t.Parallel()

	records := []TeamRecord{
		{TeamID: "65", Name: "Manchester City"},
		{TeamID: "64", Name: "Liverpool"},
	}

	got, ok := FindByTeamID(records, "64")
	if !ok {
		t.Fatal("expected team 64 to be found")
	}
	if got.Name != "Liverpool" {
		t.Fatalf("found %q, want Liverpool", got.Name)
	}

	if _, ok := FindByTeamID(records, "999"); ok {
		t.Fatal("expected team 999 to be missing")
	}
}

func TestTeamRecordValidate(t *testing.T) {
	t.Parallel()

	valid := TeamRecord{TeamID: "65", Name: "Manchester City", Played: 20}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}

	invalid := []TeamRecord{
		{Name: "No ID"},
		{TeamID: "1"},
		{TeamID: "1", Name: "Negative", Played: -1},
	}
	for _, r := range invalid {
		if err := r.Validate(); err == nil {
			t.Fatalf("expected validation error for %+v", r)
		}
	}
}
