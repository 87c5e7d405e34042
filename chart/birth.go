// Public domain.

package chart

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	_ "time/tzdata" // zone names resolve without a system database

	"github.com/go-playground/validator/v10"
)

// DateLayout and TimeLayout are the layouts of BirthData.Date and BirthData.Time.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Location is where a birth took place.
type Location struct {
	Name      string  `json:"name,omitempty" yaml:"name"`
	Latitude  float64 `json:"latitude" yaml:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" yaml:"longitude" validate:"gte=-180,lte=180"` // east positive
	Timezone  string  `json:"timezone,omitempty" yaml:"timezone" validate:"omitempty,timezone"`
}

// BirthData is the input of a chart computation.
//
// Time is the local wall clock time at Location.  It is converted to UTC
// using Location.Timezone, an IANA zone name, when given; otherwise by
// UTCOffset, in minutes east of Greenwich, when given; otherwise the clock
// time is taken as UTC.
type BirthData struct {
	Name      string    `json:"name,omitempty" yaml:"name"`
	Date      string    `json:"date" yaml:"date" validate:"required,datetime=2006-01-02"`
	Time      string    `json:"time" yaml:"time" validate:"required,datetime=15:04"`
	Location  *Location `json:"location" yaml:"location" validate:"required"`
	UTCOffset *int      `json:"utc_offset_minutes,omitempty" yaml:"utc_offset_minutes" validate:"omitempty,gte=-840,lte=840"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks b.  Failures wrap ErrInvalidBirthData.
func (b *BirthData) Validate() error {
	if err := validatorInstance().Struct(b); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return fmt.Errorf("%w: %s", ErrInvalidBirthData, describe(ve))
		}
		return fmt.Errorf("%w: %v", ErrInvalidBirthData, err)
	}
	return nil
}

func describe(ve validator.ValidationErrors) string {
	msgs := make([]string, len(ve))
	for i, fe := range ve {
		field := strings.TrimPrefix(fe.Namespace(), "BirthData.")
		switch fe.Tag() {
		case "required":
			msgs[i] = field + " is required"
		case "datetime":
			msgs[i] = fmt.Sprintf("%s %q does not match %s", field, fe.Value(), fe.Param())
		case "timezone":
			msgs[i] = fmt.Sprintf("%s %q is not a known time zone", field, fe.Value())
		case "gte", "lte":
			msgs[i] = fmt.Sprintf("%s %v out of range", field, fe.Value())
		default:
			msgs[i] = fmt.Sprintf("%s fails %s", field, fe.Tag())
		}
	}
	return strings.Join(msgs, "; ")
}

// Zone returns the time zone used to interpret the clock time.
func (b *BirthData) Zone() (*time.Location, error) {
	switch {
	case b.Location != nil && b.Location.Timezone != "":
		loc, err := time.LoadLocation(b.Location.Timezone)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBirthData, err)
		}
		return loc, nil
	case b.UTCOffset != nil:
		return time.FixedZone("", *b.UTCOffset*60), nil
	}
	return time.UTC, nil
}

// Instant validates b and returns the moment of birth in UTC.
func (b *BirthData) Instant() (time.Time, error) {
	if err := b.Validate(); err != nil {
		return time.Time{}, err
	}
	loc, err := b.Zone()
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, b.Date+" "+b.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidBirthData, err)
	}
	return t.UTC(), nil
}
