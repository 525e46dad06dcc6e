// Package entry validates time-entry drafts and converts them into
// normalized entries with absolute start and end instants.
package entry

import (
	"strings"
	"time"

	"github.com/sharewarp/timetrack/internal/model"
)

// Field names a draft field that can carry a validation error.
type Field string

const (
	FieldTask          Field = "task"
	FieldStartDateTime Field = "startDateTime"
	FieldEndDateTime   Field = "endDateTime"
	FieldStartTime     Field = "startTime"
	FieldDuration      Field = "duration"
)

// FieldOrder is the display order for validation messages.
var FieldOrder = []Field{
	FieldTask,
	FieldStartDateTime,
	FieldEndDateTime,
	FieldStartTime,
	FieldDuration,
}

// Errors maps a field to its single validation message. An empty map
// means the draft is valid.
type Errors map[Field]string

// Valid reports whether no field carries an error.
func (e Errors) Valid() bool { return len(e) == 0 }

// Clear drops the error for one field. Editing a field clears its error
// immediately; the field is not re-checked until the next Validate call.
func (e Errors) Clear(f Field) { delete(e, f) }

// Validate runs every applicable rule for the draft's mode and reports
// all failures together. Rules for the same field are evaluated in order
// and a later rule overwrites an earlier message, so at most one message
// is retained per field.
func Validate(d model.Draft) Errors {
	errs := Errors{}

	if strings.TrimSpace(d.Task) == "" {
		errs[FieldTask] = "Task is required"
	}

	switch d.Mode {
	case model.ModeManual:
		validateManual(d, errs)
	case model.ModeAuto:
		validateAuto(d, errs)
	}

	return errs
}

func validateManual(d model.Draft, errs Errors) {
	startEmpty := strings.TrimSpace(d.StartDateTime) == ""
	endEmpty := strings.TrimSpace(d.EndDateTime) == ""

	if startEmpty {
		errs[FieldStartDateTime] = "Start date and time is required"
	}
	if endEmpty {
		errs[FieldEndDateTime] = "End date and time is required"
	}

	start, startOK := model.ParseLocalDateTime(d.StartDateTime, time.Local)
	end, endOK := model.ParseLocalDateTime(d.EndDateTime, time.Local)
	if !startEmpty && !startOK {
		errs[FieldStartDateTime] = "Start date and time must be a valid date and time"
	}
	if !endEmpty && !endOK {
		errs[FieldEndDateTime] = "End date and time must be a valid date and time"
	}

	if startOK && endOK && !start.Before(end) {
		errs[FieldEndDateTime] = "End date and time must be after start date and time"
	}
}

func validateAuto(d model.Draft, errs Errors) {
	startEmpty := strings.TrimSpace(d.StartTime) == ""
	durationEmpty := strings.TrimSpace(d.Duration) == ""

	if startEmpty {
		errs[FieldStartTime] = "Start time is required"
	} else if _, ok := model.ParseLocalTime(d.StartTime, time.Local); !ok {
		errs[FieldStartTime] = "Start time must be a valid time"
	}

	if durationEmpty {
		errs[FieldDuration] = "Duration is required"
	}
	if !durationEmpty {
		if v, ok := model.ParseMinutes(d.Duration); !ok {
			errs[FieldDuration] = "Duration must be a valid number"
		} else if v <= 0 {
			errs[FieldDuration] = "Duration must be greater than zero"
		}
	}
}
