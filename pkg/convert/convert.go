// Package convert provides named value converters for accessors.
//
// A converter is a pair of functions: To maps a prop value onto the value an
// instance accepts, From maps an instance value back into prop space. Both
// return their input unchanged when it cannot be converted, leaving the
// decision to the accessor's validator.
package convert

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Func converts one value.
type Func func(value any) any

// Converter is a named pair of conversions.
type Converter struct {
	Name string
	To   Func
	From Func
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Converter{}
)

func init() {
	for _, c := range []Converter{
		{Name: "color", To: ToColor, From: FromColor},
		{Name: "int", To: ToInt, From: ToInt},
		{Name: "float", To: ToFloat, From: ToFloat},
		{Name: "bool", To: ToBool, From: ToBool},
		{Name: "string", To: ToString, From: ToString},
		{Name: "duration", To: ToDuration, From: FromDuration},
	} {
		Register(c)
	}
}

// Register adds or replaces a converter.
func Register(c Converter) {
	if c.Name == "" {
		return
	}
	if c.To == nil {
		c.To = identity
	}
	if c.From == nil {
		c.From = identity
	}
	registryMu.Lock()
	registry[c.Name] = c
	registryMu.Unlock()
}

// Lookup returns the converter registered under name.
func Lookup(name string) (Converter, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	c, ok := registry[name]
	return c, ok
}

// Names returns the registered converter names, sorted.
func Names() []string {
	registryMu.RLock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	registryMu.RUnlock()
	slices.Sort(names)
	return names
}

func identity(v any) any { return v }

// ToInt converts numbers and numeric strings to int.
func ToInt(v any) any {
	if n, ok := toInt(v); ok {
		return n
	}
	if s, ok := v.(string); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return int(f)
		}
	}
	return v
}

// ToFloat converts numbers and numeric strings to float64.
func ToFloat(v any) any {
	if f, ok := toFloat64(v); ok {
		return f
	}
	if s, ok := v.(string); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return v
}

// ToBool converts bools, boolean strings and numbers to bool. Numbers are
// true when non-zero.
func ToBool(v any) any {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
			return parsed
		}
		return v
	}
	if f, ok := toFloat64(v); ok {
		return f != 0
	}
	return v
}

// ToString converts strings, byte slices, Stringers and scalars to string.
// Nil stays nil.
func ToString(v any) any {
	switch s := v.(type) {
	case nil:
		return nil
	case string:
		return s
	case []byte:
		return string(s)
	case fmt.Stringer:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	}
	if isInteger(v) {
		n, _ := toInt(v)
		return strconv.Itoa(n)
	}
	if f, ok := toFloat64(v); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return v
}

// ToDuration converts duration strings ("150ms") and numbers, read as
// milliseconds, to time.Duration.
func ToDuration(v any) any {
	switch d := v.(type) {
	case time.Duration:
		return d
	case string:
		if parsed, err := time.ParseDuration(strings.TrimSpace(d)); err == nil {
			return parsed
		}
		return v
	}
	if f, ok := toFloat64(v); ok {
		return time.Duration(f * float64(time.Millisecond))
	}
	return v
}

// FromDuration formats a time.Duration as a duration string.
func FromDuration(v any) any {
	if d, ok := v.(time.Duration); ok {
		return d.String()
	}
	return v
}

func isInteger(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
