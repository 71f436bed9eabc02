package fixture

import "testing"

func TestTranslateStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code string
		want string
	}{
		{code: "SCHEDULED", want: StatusScheduled},
		{code: "TIMED", want: StatusScheduled},
		{code: "IN_PLAY", want: StatusLive},
		{code: "LIVE", want: StatusLive},
		{code: "PAUSED", want: StatusHalfTime},
		{code: "HT", want: StatusHalfTime},
		{code: "FINISHED", want: StatusFinished},
		{code: "FT", want: StatusFinished},
		{code: "POSTPONED", want: StatusPostponed},
		{code: "SOME_NEW_CODE", want: "SOME_NEW_CODE"},
		{code: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			t.Parallel()

			if got := TranslateStatus(tc.code); got != tc.want {
				t.Fatalf("TranslateStatus(%q) = %q, want %q", tc.code, got, tc.want)
			}
		})
	}
}

func TestIsLive(t *testing.T) {
	t.Parallel()

	if !IsLive(StatusLive) {
		t.Fatal("expected Live to be live")
	}
	if !IsLive(StatusHalfTime) {
		t.Fatal("expected Half Time to be live")
	}
	if IsLive(StatusFinished) {
		t.Fatal("expected Finished to not be live")
	}
	if IsLive(StatusScheduled) {
		t.Fatal("expected Scheduled to not be live")
	}
}
