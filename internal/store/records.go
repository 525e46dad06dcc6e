package store

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/sharewarp/timetrack/internal/model"
)

// Record is one stored time entry as the record store returns it.
// Records are read-only to this engine: created by InsertEntry, fetched in
// bulk by QueryRecords, never mutated or deleted.
type Record struct {
	ID          string       `json:"id"`
	CreatedTime string       `json:"createdTime,omitempty"`
	Fields      RecordFields `json:"fields"`
}

// RecordFields are the loosely typed per-record fields. Duration may come
// back as a number, a numeric string, or be absent entirely; consumers
// must degrade gracefully rather than fail on one bad record.
type RecordFields struct {
	Username  string `json:"Username,omitempty"`
	Task      string `json:"Task,omitempty"`
	Mode      string `json:"Mode,omitempty"`
	StartTime string `json:"Start_Time,omitempty"`
	EndTime   string `json:"End_Time,omitempty"`
	Duration  any    `json:"Duration,omitempty"`
}

// recordListResponse is the store's paged list response. A non-empty
// offset token means another page follows.
type recordListResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

// QueryRecords fetches all of a user's time-entry records, following the
// store's offset pagination. The result is unordered; sorting and display
// pagination are the caller's job.
func (c *Client) QueryRecords(ctx context.Context, username string) ([]Record, error) {
	var all []Record
	offset := ""
	for {
		query := url.Values{"view": {username}}
		if offset != "" {
			query.Set("offset", offset)
		}

		var page recordListResponse
		if err := c.do(ctx, http.MethodGet, c.tableURL(c.workHoursTable, query), nil, &page); err != nil {
			return nil, err
		}

		all = append(all, page.Records...)
		if page.Offset == "" {
			break
		}
		offset = page.Offset
	}

	c.log.Debug().Str("username", username).Int("records", len(all)).Msg("fetched records")
	return all, nil
}

// insertRequest wraps new records for the store's batch insert endpoint.
type insertRequest struct {
	Records []insertRecord `json:"records"`
}

type insertRecord struct {
	Fields insertFields `json:"fields"`
}

// insertFields is the wire form of a NormalizedEntry. Duration is omitted
// on purpose: the store derives it from the two instants.
type insertFields struct {
	Username  string `json:"Username"`
	Task      string `json:"Task"`
	Mode      string `json:"Mode"`
	StartTime string `json:"Start_Time"`
	EndTime   string `json:"End_Time"`
}

// InsertEntry stores one normalized entry. A failed insert returns the
// store's error message unchanged so the caller can show it verbatim.
func (c *Client) InsertEntry(ctx context.Context, e model.NormalizedEntry) error {
	req := insertRequest{
		Records: []insertRecord{{
			Fields: insertFields{
				Username:  e.Username,
				Task:      e.Task,
				Mode:      string(e.Mode),
				StartTime: e.Start.UTC().Format(time.RFC3339),
				EndTime:   e.End.UTC().Format(time.RFC3339),
			},
		}},
	}

	if err := c.do(ctx, http.MethodPost, c.tableURL(c.workHoursTable, nil), req, nil); err != nil {
		return err
	}

	c.log.Debug().Str("task", e.Task).Str("mode", string(e.Mode)).Msg("entry stored")
	return nil
}
