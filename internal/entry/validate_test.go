package entry_test

import (
	"testing"

	"github.com/sharewarp/timetrack/internal/entry"
	"github.com/sharewarp/timetrack/internal/model"
)

func validManualDraft() model.Draft {
	return model.Draft{
		Task:          "Design",
		Mode:          model.ModeManual,
		StartDateTime: "2025-01-10T09:00",
		EndDateTime:   "2025-01-10T10:30",
	}
}

func validAutoDraft() model.Draft {
	return model.Draft{
		Task:      "Design",
		Mode:      model.ModeAuto,
		StartTime: "09:00",
		Duration:  "90",
	}
}

func TestValidateValidDrafts(t *testing.T) {
	for _, d := range []model.Draft{validManualDraft(), validAutoDraft()} {
		errs := entry.Validate(d)
		if !errs.Valid() {
			t.Errorf("Validate(%s draft) = %v, want no errors", d.Mode, errs)
		}
	}
}

func TestValidateTaskRequired(t *testing.T) {
	// An empty or whitespace-only task is flagged regardless of mode.
	for _, task := range []string{"", "   ", "\t"} {
		manual := validManualDraft()
		manual.Task = task
		auto := validAutoDraft()
		auto.Task = task

		for _, d := range []model.Draft{manual, auto} {
			errs := entry.Validate(d)
			if errs[entry.FieldTask] != "Task is required" {
				t.Errorf("Validate(task=%q, mode=%s): task error = %q, want %q",
					task, d.Mode, errs[entry.FieldTask], "Task is required")
			}
		}
	}
}

func TestValidateManual(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.Draft)
		field   entry.Field
		message string
	}{
		{
			name:    "missing start",
			mutate:  func(d *model.Draft) { d.StartDateTime = "" },
			field:   entry.FieldStartDateTime,
			message: "Start date and time is required",
		},
		{
			name:    "missing end",
			mutate:  func(d *model.Draft) { d.EndDateTime = "" },
			field:   entry.FieldEndDateTime,
			message: "End date and time is required",
		},
		{
			name:    "unparseable start",
			mutate:  func(d *model.Draft) { d.StartDateTime = "yesterday" },
			field:   entry.FieldStartDateTime,
			message: "Start date and time must be a valid date and time",
		},
		{
			name: "start after end",
			mutate: func(d *model.Draft) {
				d.StartDateTime = "2025-01-10T11:00"
				d.EndDateTime = "2025-01-10T10:00"
			},
			field:   entry.FieldEndDateTime,
			message: "End date and time must be after start date and time",
		},
		{
			name: "start equals end",
			mutate: func(d *model.Draft) {
				d.StartDateTime = "2025-01-10T10:00"
				d.EndDateTime = "2025-01-10T10:00"
			},
			field:   entry.FieldEndDateTime,
			message: "End date and time must be after start date and time",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validManualDraft()
			tt.mutate(&d)
			errs := entry.Validate(d)
			if errs[tt.field] != tt.message {
				t.Errorf("error on %s = %q, want %q", tt.field, errs[tt.field], tt.message)
			}
		})
	}
}

func TestValidateManualNoRangeErrorWhenOrdered(t *testing.T) {
	errs := entry.Validate(validManualDraft())
	if _, ok := errs[entry.FieldEndDateTime]; ok {
		t.Errorf("unexpected endDateTime error for an ordered span: %v", errs)
	}
}

func TestValidateManualReportsAllFields(t *testing.T) {
	// All applicable rules run; failures are reported together.
	errs := entry.Validate(model.Draft{Mode: model.ModeManual})
	for _, f := range []entry.Field{entry.FieldTask, entry.FieldStartDateTime, entry.FieldEndDateTime} {
		if _, ok := errs[f]; !ok {
			t.Errorf("missing error for %s in %v", f, errs)
		}
	}
}

func TestValidateAuto(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.Draft)
		field   entry.Field
		message string
	}{
		{
			name:    "missing start time",
			mutate:  func(d *model.Draft) { d.StartTime = "" },
			field:   entry.FieldStartTime,
			message: "Start time is required",
		},
		{
			name:    "unparseable start time",
			mutate:  func(d *model.Draft) { d.StartTime = "25:99" },
			field:   entry.FieldStartTime,
			message: "Start time must be a valid time",
		},
		{
			name:    "missing duration",
			mutate:  func(d *model.Draft) { d.Duration = "" },
			field:   entry.FieldDuration,
			message: "Duration is required",
		},
		{
			name:    "non-numeric duration",
			mutate:  func(d *model.Draft) { d.Duration = "ninety" },
			field:   entry.FieldDuration,
			message: "Duration must be a valid number",
		},
		{
			name:    "zero duration",
			mutate:  func(d *model.Draft) { d.Duration = "0" },
			field:   entry.FieldDuration,
			message: "Duration must be greater than zero",
		},
		{
			name:    "negative duration",
			mutate:  func(d *model.Draft) { d.Duration = "-30" },
			field:   entry.FieldDuration,
			message: "Duration must be greater than zero",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validAutoDraft()
			tt.mutate(&d)
			errs := entry.Validate(d)
			if errs[tt.field] != tt.message {
				t.Errorf("error on %s = %q, want %q", tt.field, errs[tt.field], tt.message)
			}
		})
	}
}

func TestValidateAutoFormatBeatsRequired(t *testing.T) {
	// A present but non-numeric duration gets the format message, never
	// the required one: the later rule wins on the same field.
	d := validAutoDraft()
	d.Duration = "abc"
	errs := entry.Validate(d)
	if got := errs[entry.FieldDuration]; got != "Duration must be a valid number" {
		t.Errorf("duration error = %q, want the valid-number message", got)
	}
}

func TestErrorsClear(t *testing.T) {
	errs := entry.Validate(model.Draft{Mode: model.ModeAuto})
	if errs.Valid() {
		t.Fatal("expected errors for an empty auto draft")
	}

	// Editing a field clears only that field's error.
	errs.Clear(entry.FieldStartTime)
	if _, ok := errs[entry.FieldStartTime]; ok {
		t.Error("startTime error survived Clear")
	}
	if _, ok := errs[entry.FieldDuration]; !ok {
		t.Error("duration error should be untouched by clearing startTime")
	}
}
