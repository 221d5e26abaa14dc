package graphql

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/employeehub/internal/server/validation"
)

// DateLayout is the wire form of Date values: UTC with millisecond precision.
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

// Date is the Date scalar. On input it keeps the client's raw text so that
// malformed dates reach request validation instead of failing in the executor.
type Date struct {
	Time time.Time
	Raw  string
}

func NewDate(t time.Time) *Date {
	if t.IsZero() {
		return nil
	}
	return &Date{Time: t}
}

func (Date) ImplementsGraphQLType(name string) bool {
	return name == "Date"
}

func (d *Date) UnmarshalGraphQL(input any) error {
	switch v := input.(type) {
	case string:
		d.Raw = v
		if t, err := validation.ParseISO8601(v); err == nil {
			d.Time = t
		}
		return nil
	case time.Time:
		d.Time = v
		d.Raw = v.Format(time.RFC3339Nano)
		return nil
	case int32:
		return d.setMillis(int64(v))
	case float64:
		return d.setMillis(int64(v))
	default:
		return fmt.Errorf("wrong type for Date: %T", v)
	}
}

// setMillis reads a number as milliseconds since the Unix epoch.
func (d *Date) setMillis(ms int64) error {
	d.Time = time.UnixMilli(ms).UTC()
	d.Raw = d.Time.Format(time.RFC3339Nano)
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.UTC().Format(DateLayout))
}
