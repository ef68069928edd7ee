package core

import (
	"fmt"
	"maps"
	"net/url"
	"reflect"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"
)

// Params maps API parameter names to scalar values.
type Params map[string]any

// Set stores a value and returns the params for chaining.
func (p Params) Set(key string, value any) Params {
	p[key] = value
	return p
}

// Merge copies every entry of other into p, overwriting existing keys.
func (p Params) Merge(other Params) Params {
	maps.Copy(p, other)
	return p
}

// Clone returns a shallow copy.
func (p Params) Clone() Params {
	return maps.Clone(p)
}

// IsEmptyValue reports whether a parameter value is left out of the request:
// nil, a typed nil pointer or interface, or an empty string.
// Numeric zero and false are real values and are kept.
func IsEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

// Filter returns a copy of p without empty values.
func (p Params) Filter() Params {
	out := make(Params, len(p))
	for k, v := range p {
		if !IsEmptyValue(v) {
			out[k] = v
		}
	}
	return out
}

// Values converts the filtered params to url.Values.
func (p Params) Values() (url.Values, error) {
	values := make(url.Values, len(p))
	for k, v := range p.Filter() {
		s, err := FormatValue(v)
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", k, err)
		}
		values.Set(k, s)
	}
	return values, nil
}

// Encode returns the url-encoded form of the filtered params with keys in
// sorted order, so the same params always produce the same bytes.
func (p Params) Encode() (string, error) {
	values, err := p.Values()
	if err != nil {
		return "", err
	}
	return values.Encode(), nil
}

// FormatValue renders a single scalar the way the API expects it.
// Booleans become 1 or 0 and times become epoch seconds.
func FormatValue(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case int:
		return strconv.Itoa(val), nil
	case int8:
		return strconv.FormatInt(int64(val), 10), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case bool:
		if val {
			return "1", nil
		}
		return "0", nil
	case apd.Decimal:
		return val.Text('f'), nil
	case *apd.Decimal:
		return val.Text('f'), nil
	case time.Time:
		return strconv.FormatInt(val.Unix(), 10), nil
	case *time.Time:
		return strconv.FormatInt(val.Unix(), 10), nil
	case fmt.Stringer:
		return val.String(), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}
