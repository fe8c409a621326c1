package task

import (
	"encoding/json"
	"fmt"
	"time"
)

// ParseTime parses an RFC3339 timestamp.
func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Timestamp wraps time.Time with empty-string JSON semantics so optional
// dates round-trip as "".
type Timestamp struct {
	time.Time
}

// SameDay reports whether the timestamp falls on the same calendar day as then.
func (t Timestamp) SameDay(then time.Time) bool {
	return t.Local().Day() == then.Day() &&
		t.Local().Month() == then.Month() &&
		t.Local().Year() == then.Year()
}

func (t *Timestamp) MarshalJSON() ([]byte, error) {
	if t == nil || t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t)), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}
