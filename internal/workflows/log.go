package workflows

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/vigenere/internal/errors"
	"github.com/PolarWolf314/vigenere/internal/history"
	"github.com/PolarWolf314/vigenere/internal/vigenere"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Operations filters entries by operation (comma-separated).
	Operations string

	// Policy filters entries by policy name.
	Policy string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries before this date (YYYY-MM-DD format).
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered history entries.
	Entries []history.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the operation history.
//
// Returns ErrNoHistory if no history has been recorded.
// Returns ErrInvalidDateFormat if a date is not YYYY-MM-DD.
// Returns ErrUnknownPolicy if the policy filter names no policy.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var since, until time.Time
	var err error

	if opts.Since != "" {
		since, err = time.Parse(time.DateOnly, opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
	}
	if opts.Until != "" {
		until, err = time.Parse(time.DateOnly, opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		// Include the entire day.
		until = until.Add(24*time.Hour - time.Nanosecond)
	}

	policy := ""
	if opts.Policy != "" {
		p, err := vigenere.PolicyByName(opts.Policy)
		if err != nil {
			return nil, err
		}
		policy = p.Name()
	}

	entries, err := history.ReadEntries()
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	if entries == nil {
		return nil, kerrors.ErrNoHistory
	}

	result := &LogResult{
		TotalEntriesBeforeFilter: len(entries),
	}

	filtered := entries

	if opts.Operations != "" {
		ops := strings.Split(opts.Operations, ",")
		for i := range ops {
			ops[i] = strings.ToLower(strings.TrimSpace(ops[i]))
		}
		filtered = filter(filtered, func(e history.Entry) bool {
			return slices.Contains(ops, strings.ToLower(e.Operation))
		})
	}

	if policy != "" {
		filtered = filter(filtered, func(e history.Entry) bool {
			return e.Policy == policy
		})
	}

	if !since.IsZero() {
		filtered = filter(filtered, func(e history.Entry) bool {
			t, err := e.Time()
			return err == nil && !t.Before(since)
		})
	}

	if !until.IsZero() {
		filtered = filter(filtered, func(e history.Entry) bool {
			t, err := e.Time()
			return err == nil && !t.After(until)
		})
	}

	if opts.Reverse {
		slices.Reverse(filtered)
	}

	// The limit always keeps the most recent entries.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			filtered = filtered[:opts.Limit]
		} else {
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func filter(entries []history.Entry, keep func(history.Entry) bool) []history.Entry {
	var result []history.Entry
	for _, e := range entries {
		if keep(e) {
			result = append(result, e)
		}
	}
	return result
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	t, err := time.Parse(history.TimestampFormat, ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	if err != nil {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format(time.DateTime)
}

// FormatDetails describes what an entry touched, for the verbose log view.
func FormatDetails(e history.Entry) string {
	var target string
	switch e.Mode {
	case string(ModeFile):
		target = fmt.Sprintf("%s -> %s", e.Source, e.Output)
	case string(ModeText), string(ModeStream):
		target = e.Mode
		if e.Output != "" {
			target += " -> " + e.Output
		}
	}

	details := fmt.Sprintf("%s, %d in, %d out", target, e.SymbolsIn, e.SymbolsOut)
	if e.Invalid > 0 {
		details += fmt.Sprintf(", %d invalid bytes", e.Invalid)
	}
	if e.Error != "" {
		details += ", failed: " + e.Error
	}
	return details
}

// FormatDetailsOneline is the short form of FormatDetails.
func FormatDetailsOneline(e history.Entry) string {
	subject := e.Mode
	if e.Mode == string(ModeFile) {
		subject = e.Source
	}
	if e.Error != "" {
		return subject + " (failed)"
	}
	return subject
}
