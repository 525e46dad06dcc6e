package entry

import (
	"fmt"
	"strings"
	"time"

	"github.com/sharewarp/timetrack/internal/model"
)

// Normalize converts a valid draft into a NormalizedEntry with absolute
// UTC instants. Manual drafts parse both date-times in now's location;
// Auto drafts combine now's calendar date with the start time, so a form
// left open across midnight is anchored to the date at submission.
//
// Callers must validate the draft first. Normalize returns an error only
// on an invalid draft, which is a programming error rather than a
// user-facing condition.
func Normalize(d model.Draft, now time.Time, username string) (model.NormalizedEntry, error) {
	loc := now.Location()

	var start, end time.Time
	switch d.Mode {
	case model.ModeManual:
		var ok bool
		if start, ok = model.ParseLocalDateTime(d.StartDateTime, loc); !ok {
			return model.NormalizedEntry{}, fmt.Errorf("normalize: unparseable start date-time %q", d.StartDateTime)
		}
		if end, ok = model.ParseLocalDateTime(d.EndDateTime, loc); !ok {
			return model.NormalizedEntry{}, fmt.Errorf("normalize: unparseable end date-time %q", d.EndDateTime)
		}
	case model.ModeAuto:
		clock, ok := model.ParseLocalTime(d.StartTime, loc)
		if !ok {
			return model.NormalizedEntry{}, fmt.Errorf("normalize: unparseable start time %q", d.StartTime)
		}
		minutes, ok := model.ParseMinutes(d.Duration)
		if !ok {
			return model.NormalizedEntry{}, fmt.Errorf("normalize: unparseable duration %q", d.Duration)
		}
		start = time.Date(now.Year(), now.Month(), now.Day(),
			clock.Hour(), clock.Minute(), clock.Second(), 0, loc)
		end = start.Add(time.Duration(minutes * float64(time.Minute)))
	default:
		return model.NormalizedEntry{}, fmt.Errorf("normalize: unknown mode %q", d.Mode)
	}

	if !end.After(start) {
		return model.NormalizedEntry{}, fmt.Errorf("normalize: end %v is not after start %v", end, start)
	}

	return model.NormalizedEntry{
		Username: username,
		Task:     strings.TrimSpace(d.Task),
		Mode:     d.Mode,
		Start:    start.UTC(),
		End:      end.UTC(),
	}, nil
}
