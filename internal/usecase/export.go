package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"

	"github.com/promiedos/dashboard-pro/internal/domain/standings"
)

var exportHeader = []string{
	"position", "team", "played", "won", "draw", "lost",
	"goals_for", "goals_against", "goal_difference", "points", "points_avg", "form",
}

// ExportStandingsCSV renders the resolved table as CSV and returns the
// payload with a dated filename. Cells are comma-joined without
// quoting; no current provider emits team names containing commas.
func (s *FeedService) ExportStandingsCSV(ctx context.Context, league string) ([]byte, string, error) {
	ctx, span := startUsecaseSpan(ctx, "FeedService.ExportStandingsCSV")
	defer span.End()

	league = normalizeLeague(league)
	if league == "" {
		return nil, "", ErrInvalidInput
	}
	records, _ := s.Standings(ctx, league)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(strings.Join(exportHeader, ","))
	_ = buf.WriteByte('\n')
	for _, rec := range records {
		writeCSVRow(buf, rec)
	}

	payload := make([]byte, buf.Len())
	copy(payload, buf.Bytes())

	filename := "standings_" + strings.ToLower(league) + "_" + s.now().UTC().Format(time.DateOnly) + ".csv"
	return payload, filename, nil
}

func writeCSVRow(buf *bytebufferpool.ByteBuffer, rec standings.TeamRecord) {
	cells := []string{
		strconv.Itoa(rec.Position),
		rec.Name,
		strconv.Itoa(rec.Played),
		strconv.Itoa(rec.Won),
		strconv.Itoa(rec.Draw),
		strconv.Itoa(rec.Lost),
		strconv.Itoa(rec.GoalsFor),
		strconv.Itoa(rec.GoalsAgainst),
		strconv.Itoa(rec.GoalDifference),
		strconv.Itoa(rec.Points),
		rec.PointsAvg,
		rec.Form,
	}
	_, _ = buf.WriteString(strings.Join(cells, ","))
	_ = buf.WriteByte('\n')
}
