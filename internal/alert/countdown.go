package alert

import (
	"fmt"
	"strings"
)

// Countdown renders remaining seconds into template.
//
// The template must contain exactly one integer placeholder. C-style length
// modifiers are accepted so "%lu", "%ld", "%llu", "%u" and "%i" all behave
// like "%d". Flags and width are kept ("%02lu" renders "05"). "%%" is a
// literal percent sign.
func Countdown(template string, remaining int) (string, error) {
	format, err := parseCountdownFormat(template)
	if err != nil {
		return "", err
	}
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf(format, remaining), nil
}

// ComposeMessage returns base with the rendered countdown appended.
// An empty or malformed template yields base unchanged.
func ComposeMessage(base, template string, remaining int) string {
	if template == "" {
		return base
	}
	countdown, err := Countdown(template, remaining)
	if err != nil {
		return base
	}
	if base == "" {
		return countdown
	}
	return base + " " + countdown
}

// ValidateCountdownFormat reports whether template can render a countdown.
// The empty template is valid and means no countdown text.
func ValidateCountdownFormat(template string) error {
	if template == "" {
		return nil
	}
	_, err := parseCountdownFormat(template)
	return err
}

// parseCountdownFormat translates a printf-style template into a Go format
// string with a single %d verb.
func parseCountdownFormat(template string) (string, error) {
	var b strings.Builder
	placeholders := 0
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(template) {
			return "", fmt.Errorf("%w: trailing %% in %q", ErrMalformedFormat, template)
		}
		if template[i] == '%' {
			b.WriteString("%%")
			continue
		}
		start := i
		for i < len(template) && strings.IndexByte("-+ #0", template[i]) >= 0 {
			i++
		}
		for i < len(template) && isDigit(template[i]) {
			i++
		}
		flags := template[start:i]
		for i < len(template) && strings.IndexByte("hlqjzt", template[i]) >= 0 {
			i++
		}
		if i >= len(template) {
			return "", fmt.Errorf("%w: incomplete verb in %q", ErrMalformedFormat, template)
		}
		switch template[i] {
		case 'd', 'i', 'u':
			placeholders++
			b.WriteString("%" + flags + "d")
		default:
			return "", fmt.Errorf("%w: unsupported verb %%%c in %q", ErrMalformedFormat, template[i], template)
		}
	}
	if placeholders != 1 {
		return "", fmt.Errorf("%w: found %d in %q", ErrMalformedFormat, placeholders, template)
	}
	return b.String(), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
