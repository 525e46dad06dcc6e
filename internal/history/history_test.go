package history_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/sharewarp/timetrack/internal/history"
	"github.com/sharewarp/timetrack/internal/store"
	"github.com/sharewarp/timetrack/internal/timefmt"
)

func record(id string, start string, duration any) store.Record {
	return store.Record{
		ID: id,
		Fields: store.RecordFields{
			Task:      "Task " + id,
			StartTime: start,
			Duration:  duration,
		},
	}
}

func TestTotalMinutes(t *testing.T) {
	tests := []struct {
		name    string
		records []store.Record
		want    float64
	}{
		{"empty", nil, 0},
		{
			name: "numbers and numeric strings and missing",
			records: []store.Record{
				record("a", "", float64(30)),
				record("b", "", "45"),
				record("c", "", nil),
			},
			want: 75,
		},
		{
			name: "garbage contributes zero",
			records: []store.Record{
				record("a", "", "not a number"),
				record("b", "", float64(10)),
				record("c", "", []any{"weird"}),
			},
			want: 10,
		},
		{
			name: "fractional minutes",
			records: []store.Record{
				record("a", "", float64(7.5)),
				record("b", "", "2.5"),
			},
			want: 10,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := history.TotalMinutes(tt.records); got != tt.want {
				t.Errorf("TotalMinutes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTotalMinutesOrderIndependent(t *testing.T) {
	records := []store.Record{
		record("a", "", float64(30)),
		record("b", "", "45"),
		record("c", "", nil),
		record("d", "", float64(5)),
	}
	want := history.TotalMinutes(records)

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := make([]store.Record, len(records))
		copy(shuffled, records)
		r.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		if got := history.TotalMinutes(shuffled); got != want {
			t.Fatalf("TotalMinutes after shuffle = %v, want %v", got, want)
		}
	}
}

func TestAggregateThenFormat(t *testing.T) {
	// Three records with durations 30, "45", and missing total 75 minutes,
	// displayed as "01:15".
	records := []store.Record{
		record("a", "", float64(30)),
		record("b", "", "45"),
		record("c", "", nil),
	}
	total := history.TotalMinutes(records)
	if total != 75 {
		t.Fatalf("TotalMinutes = %v, want 75", total)
	}
	if got := timefmt.MinutesToHHMM(total); got != "01:15" {
		t.Errorf("MinutesToHHMM(%v) = %q, want %q", total, got, "01:15")
	}
}

func TestSortNewestFirst(t *testing.T) {
	records := []store.Record{
		record("old", "2025-01-08T09:00:00Z", nil),
		record("missing", "", nil),
		record("new", "2025-01-10T09:00:00Z", nil),
		record("mid", "2025-01-09T09:00:00Z", nil),
	}
	history.SortNewestFirst(records)

	wantOrder := []string{"new", "mid", "old", "missing"}
	for i, want := range wantOrder {
		if records[i].ID != want {
			t.Fatalf("position %d = %q, want %q (order %v)", i, records[i].ID, want, records)
		}
	}
}

func TestSortNewestFirstDeterministic(t *testing.T) {
	// Equal and missing start times keep a stable order across calls.
	records := []store.Record{
		record("a", "2025-01-10T09:00:00Z", nil),
		record("b", "2025-01-10T09:00:00Z", nil),
		record("c", "", nil),
		record("d", "", nil),
	}
	history.SortNewestFirst(records)
	first := make([]string, len(records))
	for i, r := range records {
		first[i] = r.ID
	}

	history.SortNewestFirst(records)
	for i, r := range records {
		if r.ID != first[i] {
			t.Fatalf("sort order changed between calls: %v vs %v", first, records)
		}
	}
}

func TestStartInstantMissingIsEpoch(t *testing.T) {
	epoch := time.Unix(0, 0).UTC()
	for _, startTime := range []string{"", "banana"} {
		got := history.StartInstant(record("x", startTime, nil))
		if !got.Equal(epoch) {
			t.Errorf("StartInstant(%q) = %v, want epoch", startTime, got)
		}
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{12, 10, 2},
	}
	for _, tt := range tests {
		if got := history.TotalPages(tt.count, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.count, tt.size, got, tt.want)
		}
	}
}

func TestPaginate(t *testing.T) {
	records := make([]store.Record, 12)
	for i := range records {
		start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC).AddDate(0, 0, len(records)-i)
		records[i] = record(fmt.Sprintf("r%02d", i+1), start.Format(time.RFC3339), nil)
	}
	history.SortNewestFirst(records)

	page1 := history.Paginate(records, 1, 10)
	if page1.Number != 1 || page1.TotalPages != 2 || len(page1.Records) != 10 {
		t.Fatalf("page 1 = number %d, total %d, len %d", page1.Number, page1.TotalPages, len(page1.Records))
	}
	page2 := history.Paginate(records, 2, 10)
	if page2.Number != 2 || len(page2.Records) != 2 {
		t.Fatalf("page 2 = number %d, len %d", page2.Number, len(page2.Records))
	}

	// Concatenating the pages reproduces the sorted sequence exactly.
	var all []string
	for _, r := range page1.Records {
		all = append(all, r.ID)
	}
	for _, r := range page2.Records {
		all = append(all, r.ID)
	}
	for i, r := range records {
		if all[i] != r.ID {
			t.Fatalf("pages do not reassemble the sorted input: %v", all)
		}
	}
}

func TestPaginateClamps(t *testing.T) {
	records := []store.Record{record("a", "", nil), record("b", "", nil)}

	tests := []struct {
		page       int
		wantNumber int
	}{
		{0, 1},
		{-5, 1},
		{1, 1},
		{99, 1},
	}
	for _, tt := range tests {
		got := history.Paginate(records, tt.page, 10)
		if got.Number != tt.wantNumber {
			t.Errorf("Paginate(page=%d).Number = %d, want %d", tt.page, got.Number, tt.wantNumber)
		}
	}
}

func TestPaginateEmpty(t *testing.T) {
	got := history.Paginate(nil, 1, 10)
	if got.TotalPages != 0 {
		t.Errorf("TotalPages = %d, want 0", got.TotalPages)
	}
	if len(got.Records) != 0 {
		t.Errorf("Records = %v, want empty", got.Records)
	}
}

func TestPagerResetsOnCountChange(t *testing.T) {
	twelve := make([]store.Record, 12)
	for i := range twelve {
		twelve[i] = record(fmt.Sprintf("r%d", i), "", nil)
	}

	p := history.NewPager(10)
	if page := p.Current(twelve); page.TotalPages != 2 {
		t.Fatalf("TotalPages = %d, want 2", page.TotalPages)
	}

	p.SetPage(2)
	if page := p.Current(twelve); page.Number != 2 || len(page.Records) != 2 {
		t.Fatalf("page 2 = number %d, len %d", page.Number, len(page.Records))
	}

	// Refreshing down to five records snaps back to page 1.
	five := twelve[:5]
	if page := p.Current(five); page.Number != 1 || page.TotalPages != 1 {
		t.Fatalf("after shrink: number %d, total %d, want 1 and 1", page.Number, page.TotalPages)
	}
}
