package clock

import (
	"fmt"
	"time"

	"github.com/pbrahmapurd/japa/internal/constants"
)

// Clock provides the current time and calendar date. Two Today calls inside
// the same local day must return equal values.
type Clock interface {
	Now() time.Time
	Today() string
}

// SystemClock reads the wall clock in a configured IANA timezone.
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock creates a clock for the given timezone name. "Local" or an
// empty name selects the system timezone.
func NewSystemClock(timezone string) (*SystemClock, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &SystemClock{loc: loc}, nil
}

func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *SystemClock) Today() string {
	return c.Now().Format(constants.DateFormat)
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// Fixed is a Clock pinned to a single instant, for tests.
type Fixed struct {
	Time time.Time
}

func (f Fixed) Now() time.Time { return f.Time }

func (f Fixed) Today() string { return f.Time.Format(constants.DateFormat) }
