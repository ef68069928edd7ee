package poloniex

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"poloniex/pkg/core"
)

// DateRange is an optional start/end pair in epoch seconds.
type DateRange struct {
	Start *int64
	End   *int64
}

// Params returns the start and end entries for the bounds that are set.
func (r DateRange) Params() core.Params {
	p := core.Params{}
	if r.Start != nil {
		p[paramStart] = *r.Start
	}
	if r.End != nil {
		p[paramEnd] = *r.End
	}
	return p
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool {
	return r.Start == nil && r.End == nil
}

// Between builds a range from two times. A zero time leaves that bound open.
func Between(from, to time.Time) DateRange {
	var r DateRange
	if !from.IsZero() {
		s := from.Unix()
		r.Start = &s
	}
	if !to.IsZero() {
		e := to.Unix()
		r.End = &e
	}
	return r
}

// Since builds a range open at the end.
func Since(from time.Time) DateRange {
	return Between(from, time.Time{})
}

type unixer interface {
	Unix() int64
}

type timestamper interface {
	Timestamp() int64
}

// dateLayouts are tried in order for non-numeric strings. Values without a
// zone are read as UTC.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"2006/01/02 15:04:05",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.ANSIC,
	"02 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
}

// FormatDates normalizes two bounds into a DateRange. Each bound may be nil,
// an integer or float (epoch seconds), a numeric string, a time.Time, any
// value with a Unix() int64 or Timestamp() int64 method, or a date-like
// string. Absent bounds stay absent.
func FormatDates(start, end any) (DateRange, error) {
	var r DateRange
	var err error
	if r.Start, err = toEpoch(start); err != nil {
		return DateRange{}, fmt.Errorf("start: %w", err)
	}
	if r.End, err = toEpoch(end); err != nil {
		return DateRange{}, fmt.Errorf("end: %w", err)
	}
	return r, nil
}

func toEpoch(v any) (*int64, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, nil
	}

	var n int64
	switch val := v.(type) {
	case string:
		return parseEpochString(val)
	case unixer:
		n = val.Unix()
	case timestamper:
		n = val.Timestamp()
	default:
		switch rv.Kind() {
		case reflect.Pointer:
			return toEpoch(rv.Elem().Interface())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n = rv.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			n = int64(rv.Uint())
		case reflect.Float32, reflect.Float64:
			n = int64(math.Trunc(rv.Float()))
		case reflect.String:
			return parseEpochString(rv.String())
		default:
			return nil, core.NewInvalidArgumentError("", fmt.Sprintf("unsupported date type %T", v))
		}
	}
	return &n, nil
}

func parseEpochString(s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		n := int64(math.Trunc(f))
		return &n, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			n := t.Unix()
			return &n, nil
		}
	}
	return nil, core.NewInvalidArgumentError("", fmt.Sprintf("unrecognized date %q", s))
}
