// Package session owns the active user's draft and history list and
// enforces the submit/refresh ordering rules around them.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sharewarp/timetrack/internal/entry"
	"github.com/sharewarp/timetrack/internal/history"
	"github.com/sharewarp/timetrack/internal/model"
	"github.com/sharewarp/timetrack/internal/store"
)

var (
	// ErrSubmitPending is returned when Submit is called while an earlier
	// submission has not resolved yet. Submissions are never queued or
	// retried; the caller waits and tries again.
	ErrSubmitPending = errors.New("a submission is already in flight")
	// ErrClosed is returned for operations on a closed session.
	ErrClosed = errors.New("session is closed")
)

// RefreshError reports that the entry was stored but the follow-up
// history refresh failed. The draft has already been cleared; only the
// displayed history is stale.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return "entry stored, but refreshing history failed: " + e.Err.Error()
}

func (e *RefreshError) Unwrap() error { return e.Err }

// RecordStore is the slice of the store client the session needs.
type RecordStore interface {
	QueryRecords(ctx context.Context, username string) ([]store.Record, error)
	InsertEntry(ctx context.Context, e model.NormalizedEntry) error
}

// Session holds the single draft and the single history list for one
// logged-in user. Both are replaced wholesale on update, never partially
// mutated by two in-flight operations at once.
type Session struct {
	mu sync.Mutex

	store    RecordStore
	username string
	now      func() time.Time
	log      zerolog.Logger

	draft model.Draft
	errs  entry.Errors

	records []store.Record
	pager   *history.Pager

	submitting bool
	fetchGen   uint64
	closed     bool
}

// Option configures a Session during construction.
type Option func(*Session)

// WithClock injects the wall clock used for Auto-mode normalization.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithPageSize sets the history page size.
func WithPageSize(size int) Option {
	return func(s *Session) { s.pager = history.NewPager(size) }
}

// WithLogger sets the session's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// New creates a session for username backed by st. The draft starts in
// Manual mode, matching the entry form's default.
func New(st RecordStore, username string, opts ...Option) *Session {
	s := &Session{
		store:    st,
		username: username,
		now:      time.Now,
		log:      log.With().Str("component", "session").Logger(),
		draft:    model.Draft{Mode: model.ModeManual},
		errs:     entry.Errors{},
		pager:    history.NewPager(history.DefaultPageSize),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Username returns the session's user.
func (s *Session) Username() string { return s.username }

// Draft returns a copy of the current draft.
func (s *Session) Draft() model.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetDraft replaces the draft wholesale and clears all validation errors.
func (s *Session) SetDraft(d model.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = d
	s.errs = entry.Errors{}
}

// SetMode switches the authoritative time-field set. The inactive set's
// values are kept; they are simply no longer read.
func (s *Session) SetMode(m model.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Mode = m
}

// SetField updates one draft field and clears that field's validation
// error. The field is not re-validated until the next Submit.
func (s *Session) SetField(f entry.Field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs.Clear(f)
	switch f {
	case entry.FieldTask:
		s.draft.Task = value
	case entry.FieldStartDateTime:
		s.draft.StartDateTime = value
	case entry.FieldEndDateTime:
		s.draft.EndDateTime = value
	case entry.FieldStartTime:
		s.draft.StartTime = value
	case entry.FieldDuration:
		s.draft.Duration = value
	}
}

// Errors returns a copy of the current per-field validation errors.
func (s *Session) Errors() entry.Errors {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := entry.Errors{}
	for f, msg := range s.errs {
		out[f] = msg
	}
	return out
}

// Records returns the current history list, sorted newest first.
func (s *Session) Records() []store.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]store.Record, len(s.records))
	copy(out, s.records)
	return out
}

// TotalMinutes sums the durations of the current history list.
func (s *Session) TotalMinutes() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return history.TotalMinutes(s.records)
}

// SetPage requests a history page for the next Page call.
func (s *Session) SetPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pager.SetPage(n)
}

// Page returns the current history page.
func (s *Session) Page() history.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pager.Current(s.records)
}

// Submit validates the draft and, when valid, normalizes it, stores it,
// and refreshes the history strictly after the write has succeeded.
//
// An invalid draft returns its field errors with a nil error and the
// session stays in editing state. A store failure preserves the draft so
// the user can retry manually; nothing is retried automatically. On
// success the draft is cleared (the mode is kept). A *RefreshError means
// the entry was stored but the history could not be reloaded.
func (s *Session) Submit(ctx context.Context) (entry.Errors, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitPending
	}

	errs := entry.Validate(s.draft)
	if !errs.Valid() {
		s.errs = errs
		s.mu.Unlock()
		return errs, nil
	}

	s.submitting = true
	d := s.draft
	username := s.username
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	normalized, err := entry.Normalize(d, s.now(), username)
	if err != nil {
		// Validate passed, so this is a defect, not user input.
		return nil, fmt.Errorf("normalizing validated draft: %w", err)
	}

	if err := s.store.InsertEntry(ctx, normalized); err != nil {
		s.log.Error().Err(err).Msg("entry submission failed")
		return nil, err
	}

	s.mu.Lock()
	s.draft = model.Draft{Mode: d.Mode}
	s.errs = entry.Errors{}
	s.mu.Unlock()

	s.log.Debug().Str("task", normalized.Task).Msg("entry submitted")

	if err := s.Refresh(ctx); err != nil {
		return nil, &RefreshError{Err: err}
	}
	return nil, nil
}

// Refresh reloads the user's history from the store and replaces the list
// wholesale. Each refresh carries a generation token; a fetch that loses
// the race to a newer refresh, or returns after Close, is discarded
// without touching session state. The pager resets to page 1 whenever the
// record count changes.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.fetchGen++
	gen := s.fetchGen
	username := s.username
	s.mu.Unlock()

	records, err := s.store.QueryRecords(ctx, username)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.fetchGen {
		s.log.Debug().Uint64("generation", gen).Msg("discarding stale history fetch")
		return nil
	}
	if err != nil {
		// Keep the previously loaded history so the user can retry.
		return err
	}

	history.SortNewestFirst(records)
	s.records = records
	s.pager.Current(s.records)
	return nil
}

// Close invalidates in-flight fetches and rejects further operations.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.fetchGen++
}
