package repository

import (
	"database/sql"
	"time"
)

// parseNullableTime parses s with layout, returning the zero time when the
// value is NULL, empty or malformed.
func parseNullableTime(s sql.NullString, layout string) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
