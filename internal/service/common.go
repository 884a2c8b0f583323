package service

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	// ErrNotFound marks lookups of rows that do not exist for the caller.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks caller mistakes that are not planner validation.
	ErrInvalidInput = errors.New("invalid input")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

type sqlExecutor interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 {
		return invalidf("%s must be >= 0", name)
	}
	return nil
}

func validateOptionalNonNegative(name string, value *float64) error {
	if value == nil {
		return nil
	}
	return validateNonNegativeFloat(name, *value)
}

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

// resolveDate accepts YYYY-MM-DD and defaults to the day of now.
func resolveDate(value string, now time.Time) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return orNow(now).Format(dateLayout), nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return "", invalidf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t.Format(dateLayout), nil
}

// daysAgo returns the date n days before now, inclusive lower bound for
// "last n days" queries.
func daysAgo(now time.Time, n int) string {
	return orNow(now).AddDate(0, 0, -n).Format(dateLayout)
}

func orNow(now time.Time) time.Time {
	if now.IsZero() {
		return time.Now()
	}
	return now
}

func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(raw), nil
}

func decodeList(raw string) ([]string, error) {
	out := []string{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return out, nil
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	i := v.Int64
	return &i
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func affectedOrNotFound(res sql.Result, what string, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for %s %d: %w", what, id, err)
	}
	if affected == 0 {
		return notFoundf("%s %d", what, id)
	}
	return nil
}
