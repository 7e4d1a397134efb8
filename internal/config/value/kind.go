// Package value defines the closed set of scalar types a configuration
// option can hold, together with their text codecs.
//
// Every option value in gridcfg is stored as text; a Kind fixes how that
// text is parsed and how typed values are rendered back. The codec is
// symmetric: any string accepted by Parse is produced by Format for the
// corresponding typed value.
package value

import (
	"time"
)

// Kind identifies the semantic type of a scalar configuration value.
type Kind uint8

const (
	// KindString accepts any text verbatim.
	KindString Kind = iota
	// KindInt is a base-10 signed integer.
	KindInt
	// KindFloat is a decimal floating-point number.
	KindFloat
	// KindBool is "true" or "false".
	KindBool
	// KindDuration is a Go duration string such as "150ms".
	KindDuration
	// KindColor is a hex RGB color with optional alpha (#RRGGBB[AA]).
	KindColor
	// KindKeybind is a modifier+key chord such as "<ctrl><alt>x".
	KindKeybind
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDuration:
		return "duration"
	case KindColor:
		return "color"
	case KindKeybind:
		return "keybind"
	default:
		return "unknown"
	}
}

// KindOf reports the Kind corresponding to the Go type T.
// The second result is false for types outside the supported set.
func KindOf[T any]() (Kind, bool) {
	var zero T
	switch any(zero).(type) {
	case string:
		return KindString, true
	case int:
		return KindInt, true
	case float64:
		return KindFloat, true
	case bool:
		return KindBool, true
	case time.Duration:
		return KindDuration, true
	case Color:
		return KindColor, true
	case Keybind:
		return KindKeybind, true
	default:
		return KindString, false
	}
}
