package value

import (
	"fmt"
	"strconv"
	"time"
)

// Parse converts raw text into the typed value for the given kind.
// The returned value's dynamic type is string, int, float64, bool,
// time.Duration, Color or Keybind depending on the kind.
func Parse(k Kind, raw string) (any, error) {
	switch k {
	case KindString:
		return raw, nil
	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing %q as int: %w", raw, err)
		}
		return n, nil
	case KindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q as float: %w", raw, err)
		}
		return f, nil
	case KindBool:
		switch raw {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return nil, fmt.Errorf("parsing %q as bool: want true or false", raw)
		}
	case KindDuration:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing %q as duration: %w", raw, err)
		}
		return d, nil
	case KindColor:
		c, err := ParseColor(raw)
		if err != nil {
			return nil, err
		}
		return c, nil
	case KindKeybind:
		b, err := ParseKeybind(raw)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown kind %d", k)
	}
}

// Format renders a typed value as canonical text for the given kind.
// Returns an error if the dynamic type does not match the kind.
func Format(k Kind, v any) (string, error) {
	switch k {
	case KindString:
		s, ok := v.(string)
		if !ok {
			return "", typeMismatch(k, v)
		}
		return s, nil
	case KindInt:
		n, ok := v.(int)
		if !ok {
			return "", typeMismatch(k, v)
		}
		return strconv.Itoa(n), nil
	case KindFloat:
		f, ok := v.(float64)
		if !ok {
			return "", typeMismatch(k, v)
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return "", typeMismatch(k, v)
		}
		return strconv.FormatBool(b), nil
	case KindDuration:
		d, ok := v.(time.Duration)
		if !ok {
			return "", typeMismatch(k, v)
		}
		return d.String(), nil
	case KindColor:
		c, ok := v.(Color)
		if !ok {
			return "", typeMismatch(k, v)
		}
		return c.String(), nil
	case KindKeybind:
		b, ok := v.(Keybind)
		if !ok {
			return "", typeMismatch(k, v)
		}
		return b.String(), nil
	default:
		return "", fmt.Errorf("unknown kind %d", k)
	}
}

// IsParsable reports whether raw parses as the given kind.
func IsParsable(k Kind, raw string) bool {
	_, err := Parse(k, raw)
	return err == nil
}

// As parses raw as the kind matching the Go type T.
// It panics if T is outside the supported set.
func As[T any](raw string) (T, error) {
	var zero T
	k, ok := KindOf[T]()
	if !ok {
		panic(fmt.Sprintf("value: unsupported type %T", zero))
	}
	v, err := Parse(k, raw)
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// FormatAs renders v using the codec for its Go type.
// It panics if T is outside the supported set.
func FormatAs[T any](v T) string {
	k, ok := KindOf[T]()
	if !ok {
		panic(fmt.Sprintf("value: unsupported type %T", v))
	}
	s, err := Format(k, v)
	if err != nil {
		// KindOf guarantees the dynamic type matches the kind.
		panic(err)
	}
	return s
}

func typeMismatch(k Kind, v any) error {
	return fmt.Errorf("formatting %T as %s: type mismatch", v, k)
}
