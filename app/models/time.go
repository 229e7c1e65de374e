package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeLayout is the wire format for every timestamp the API serves.
const TimeLayout = "2006-01-02 15:04:05"

// Timestamp is a second-precision UTC time that marshals as
// "2006-01-02 15:04:05". A nil *Timestamp marshals as JSON null, which is
// how an unfulfilled order reports its fulfillment_date.
type Timestamp struct {
	time.Time
}

// Now returns the current UTC time truncated to whole seconds.
func Now() Timestamp {
	return Timestamp{time.Now().UTC().Truncate(time.Second)}
}

// NowPtr is Now for nullable columns.
func NowPtr() *Timestamp {
	ts := Now()
	return &ts
}

// GormDataType tells the schema parser which column type to migrate.
func (Timestamp) GormDataType() string { return "datetime" }

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(TimeLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		t.Time = time.Time{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("timestamp: invalid JSON value %s", s)
	}
	parsed, err := time.Parse(TimeLayout, s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("timestamp: parse %s: %w", s, err)
	}
	t.Time = parsed.UTC()
	return nil
}

// Value implements driver.Valuer so GORM stores the underlying time.
func (t Timestamp) Value() (driver.Value, error) {
	return t.Time, nil
}

// Scan implements sql.Scanner for the drivers we support: native
// time.Time (postgres, mysql with parseTime, sqlserver) and text (sqlite).
func (t *Timestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v.UTC()
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("timestamp: cannot scan %T", src)
	}
}

func (t *Timestamp) scanString(s string) error {
	layouts := []string{
		TimeLayout,
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999-07:00", // sqlite text storage
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("timestamp: cannot parse %q", s)
}
