package model

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Mode selects which set of time fields on a Draft is authoritative.
type Mode string

const (
	// ModeManual means the entry is described by explicit start and end
	// date-times.
	ModeManual Mode = "Manual"
	// ModeAuto means the entry is described by a start time of day plus a
	// duration in minutes; the date is taken from the submission moment.
	ModeAuto Mode = "Auto"
)

// Layouts accepted for the local date-time and time-of-day draft fields.
// Both with-seconds and without-seconds forms are accepted because time
// pickers and shells produce either.
var (
	dateTimeLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04"}
	timeLayouts     = []string{"15:04:05", "15:04"}
)

// Draft is the in-progress, unsubmitted time entry. The Mode field gates
// which time fields are read; consumers never look at the inactive set, so
// a stale value left behind by a mode switch is harmless.
type Draft struct {
	Task string
	Mode Mode

	// Manual mode fields: local date-time strings ("2006-01-02T15:04").
	StartDateTime string
	EndDateTime   string

	// Auto mode fields: local time of day ("15:04") and minutes.
	StartTime string
	Duration  string
}

// NormalizedEntry is a validated draft converted to absolute instants,
// ready for submission to the record store. End is strictly after Start.
type NormalizedEntry struct {
	Username string
	Task     string
	Mode     Mode
	Start    time.Time
	End      time.Time
}

// ParseLocalDateTime parses a draft date-time string in loc.
func ParseLocalDateTime(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseLocalTime parses a draft time-of-day string in loc. The returned
// time carries only the clock fields; the date is the zero date.
func ParseLocalTime(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseMinutes parses a duration-in-minutes draft field. It accepts any
// finite numeric value, matching what a numeric form input would allow.
func ParseMinutes(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// CurrentStartTime returns the start time of day the draft currently
// describes, for live feedback while editing. The second return value is
// false when the active mode's start field is absent or unparseable.
func (d Draft) CurrentStartTime() (string, bool) {
	switch d.Mode {
	case ModeManual:
		if t, ok := ParseLocalDateTime(d.StartDateTime, time.Local); ok {
			return t.Format("15:04"), true
		}
	case ModeAuto:
		if strings.TrimSpace(d.StartTime) != "" {
			return d.StartTime, true
		}
	}
	return "", false
}

// CurrentDuration returns the duration in minutes the draft currently
// describes. Partial or malformed input yields 0; Manual spans clamp at 0.
func (d Draft) CurrentDuration() int {
	switch d.Mode {
	case ModeManual:
		start, okS := ParseLocalDateTime(d.StartDateTime, time.Local)
		end, okE := ParseLocalDateTime(d.EndDateTime, time.Local)
		if !okS || !okE {
			return 0
		}
		mins := math.Round(end.Sub(start).Minutes())
		if mins < 0 {
			return 0
		}
		return int(mins)
	case ModeAuto:
		if v, ok := ParseMinutes(d.Duration); ok {
			return int(math.Round(v))
		}
	}
	return 0
}

// RangeStatus describes the Manual-mode start/end span for preview
// purposes. It is presentational only and never blocks submission.
type RangeStatus int

const (
	// RangeIncomplete means one or both date-times are absent or unparseable.
	RangeIncomplete RangeStatus = iota
	// RangeOK means end is strictly after start.
	RangeOK
	// RangeInvalid means the span is zero or negative.
	RangeInvalid
)

// PreviewRange reports the status of the Manual-mode time span. Auto-mode
// drafts always report RangeIncomplete since they have no explicit end.
func (d Draft) PreviewRange() RangeStatus {
	if d.Mode != ModeManual {
		return RangeIncomplete
	}
	start, okS := ParseLocalDateTime(d.StartDateTime, time.Local)
	end, okE := ParseLocalDateTime(d.EndDateTime, time.Local)
	if !okS || !okE {
		return RangeIncomplete
	}
	if !end.After(start) {
		return RangeInvalid
	}
	return RangeOK
}

// SpansMultipleDays reports whether a Manual-mode draft's start and end
// fall on different calendar days.
func (d Draft) SpansMultipleDays() bool {
	if d.Mode != ModeManual {
		return false
	}
	start, okS := ParseLocalDateTime(d.StartDateTime, time.Local)
	end, okE := ParseLocalDateTime(d.EndDateTime, time.Local)
	if !okS || !okE {
		return false
	}
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	return sy != ey || sm != em || sd != ed
}
