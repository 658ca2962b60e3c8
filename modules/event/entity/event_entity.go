package entity

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

type EventStatus string

const (
	EventStatusPending  EventStatus = "pending"
	EventStatusAccepted EventStatus = "accepted"
	EventStatusDeclined EventStatus = "declined"
)

const (
	dateLayout      = "2006-01-02"
	clockLayout     = "15:04"
	clockLayoutSecs = "15:04:05"
)

// Date is a calendar day rendered as YYYY-MM-DD.
type Date string

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("date must be YYYY-MM-DD: %q", s)
	}
	return Date(t.Format(dateLayout)), nil
}

func (d Date) Value() (driver.Value, error) {
	return string(d), nil
}

func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = Date(v.Format(dateLayout))
	case []byte:
		*d = Date(firstN(string(v), len(dateLayout)))
	case string:
		*d = Date(firstN(v, len(dateLayout)))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
	return nil
}

// ClockTime is a time of day. It renders as HH:MM and keeps seconds only
// when they are non-zero.
type ClockTime string

func ParseClockTime(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{clockLayout, clockLayoutSecs} {
		if t, err := time.Parse(layout, s); err == nil {
			return clockFromTime(t), nil
		}
	}
	return "", fmt.Errorf("time must be HH:MM or HH:MM:SS: %q", s)
}

func clockFromTime(t time.Time) ClockTime {
	if t.Second() != 0 {
		return ClockTime(t.Format(clockLayoutSecs))
	}
	return ClockTime(t.Format(clockLayout))
}

func (c ClockTime) Value() (driver.Value, error) {
	if len(c) == len(clockLayout) {
		return string(c) + ":00", nil
	}
	return string(c), nil
}

func (c *ClockTime) Scan(value any) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*c = ""
		return nil
	case time.Time:
		*c = clockFromTime(v)
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into ClockTime", value)
	}

	// drivers may add fractional seconds or a zone suffix
	parsed, err := ParseClockTime(firstN(raw, len(clockLayoutSecs)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func firstN(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

type Event struct {
	ID         int64       `db:"id" json:"id"`
	Title      string      `db:"title" json:"title"`
	Place      string      `db:"place" json:"place"`
	Gradient   string      `db:"gradient" json:"gradient"`
	Icon       string      `db:"icon" json:"icon"`
	Date       Date        `db:"date" json:"date"`
	Time       ClockTime   `db:"time" json:"time"`
	Status     EventStatus `db:"status" json:"status"`
	QRCodePath *string     `db:"qr_code_path" json:"qr_code_path"`
	PhotoPath  *string     `db:"photo_path" json:"photo_path"`
	CreatedAt  *time.Time  `db:"created_at" json:"created_at,omitempty"`
}

// Photo is one gallery entry.
type Photo struct {
	ID        int64  `db:"id" json:"id"`
	PhotoPath string `db:"photo_path" json:"photo_path"`
	Title     string `db:"title" json:"title"`
	Date      Date   `db:"date" json:"date"`
}
