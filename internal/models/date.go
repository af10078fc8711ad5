package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Accepted input layouts. Storage and JSON output always use the first one.
var dateLayouts = []string{"2006-01-02", "2.1.2006", "2.1.06"}

// Date is a calendar day without time of day or location.
type Date struct {
	civil.Date
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Date: civil.Date{Year: year, Month: month, Day: day}}
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	return Date{Date: civil.DateOf(t)}
}

// ParseDate accepts YYYY-MM-DD, DD.MM.YYYY and DD.MM.YY.
func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q", raw)
}

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool {
	return d.Date == civil.Date{}
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return Date{Date: d.Date.AddDays(n)}
}

// DaysSince returns the signed number of days from s to d.
func (d Date) DaysSince(s Date) int {
	return d.Date.DaysSince(s.Date)
}

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool {
	return d.Date.Before(o.Date)
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.Date.String(), nil
}

// Scan implements sql.Scanner for DATE and TEXT columns.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	case nil:
		return fmt.Errorf("scan date: unexpected NULL")
	default:
		return fmt.Errorf("scan date: unsupported type %T", src)
	}
}

func (d *Date) scanText(raw string) error {
	if len(raw) > 10 {
		raw = raw[:10]
	}
	parsed, err := civil.ParseDate(raw)
	if err != nil {
		return fmt.Errorf("scan date: %w", err)
	}
	d.Date = parsed
	return nil
}

// MarshalJSON renders the ISO form.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Date.String())
}

// UnmarshalJSON accepts any of the supported input layouts.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// NullDate is a Date that may be absent.
type NullDate struct {
	Date  Date
	Valid bool
}

// NullDateFrom returns a valid NullDate.
func NullDateFrom(d Date) NullDate {
	return NullDate{Date: d, Valid: true}
}

// Ptr returns nil when the date is absent.
func (n NullDate) Ptr() *Date {
	if !n.Valid {
		return nil
	}
	d := n.Date
	return &d
}

// String renders the date or an empty string.
func (n NullDate) String() string {
	if !n.Valid {
		return ""
	}
	return n.Date.String()
}

// Value implements driver.Valuer.
func (n NullDate) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Date.Value()
}

// Scan implements sql.Scanner.
func (n *NullDate) Scan(src interface{}) error {
	if src == nil {
		n.Date, n.Valid = Date{}, false
		return nil
	}
	if err := n.Date.Scan(src); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// MarshalJSON renders null when absent.
func (n NullDate) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.Date.MarshalJSON()
}

// UnmarshalJSON treats null and the empty string as absent.
func (n *NullDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		n.Date, n.Valid = Date{}, false
		return nil
	}
	if err := n.Date.UnmarshalJSON(data); err != nil {
		return err
	}
	n.Valid = true
	return nil
}
