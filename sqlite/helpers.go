package sqlite

import (
	"database/sql"
	"fmt"
	"time"
)

// timeLayout is fixed width with nanoseconds so that stored timestamps sort
// lexically in start order, even within the same second.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// parseTime parses a timestamp written with timeLayout.
func parseTime(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// rollback aborts tx unless it was committed.
func rollback(tx *sql.Tx) {
	_ = tx.Rollback()
}
