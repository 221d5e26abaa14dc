package validation

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Record is the input under validation, keyed by wire field name.
// A missing key and a nil value are both treated as absent.
type Record map[string]any

// FieldError is one failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the ordered list of failures from one Validate call.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, ", ")
}

// Validate runs every rule of rs against r. It returns nil when r passes.
func Validate(r Record, rs Ruleset) Errors {
	var errs Errors

	for _, f := range rs {
		v, present := lookup(r, f.Name)

		for _, rule := range f.Rules {
			if rule.Kind == KindOptional {
				if !present {
					break
				}
				continue
			}
			if !check(rule, v, present) {
				errs = append(errs, FieldError{Field: f.Name, Message: rule.Message})
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func lookup(r Record, name string) (any, bool) {
	v, ok := r[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func check(rule Rule, v any, present bool) bool {
	switch rule.Kind {
	case KindRequired:
		return present && asString(v) != ""
	case KindMinLength:
		return utf8.RuneCountInString(asString(v)) >= rule.Length
	case KindNumericRange:
		n, ok := asNumber(v)
		if !ok {
			return false
		}
		if rule.Min != nil && n < *rule.Min {
			return false
		}
		if rule.Max != nil && n > *rule.Max {
			return false
		}
		return true
	case KindOneOf:
		s := asString(v)
		for _, allowed := range rule.Values {
			if s == allowed {
				return true
			}
		}
		return false
	case KindFormat:
		switch rule.Format {
		case FormatEmail:
			return IsEmail(asString(v))
		case FormatISO8601:
			if _, ok := v.(time.Time); ok {
				return true
			}
			_, err := ParseISO8601(asString(v))
			return err == nil
		}
	}
	return false
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(t)
	}
}

func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return n, err == nil && t != ""
	}
	return 0, false
}

// IsEmail reports whether s is a bare address whose domain is a
// fully qualified name with an alphabetic top-level label.
func IsEmail(s string) bool {
	if s == "" || len(s) > 254 || strings.ContainsAny(s, " \t\r\n<>") {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}

	at := strings.LastIndexByte(s, '@')
	if at > 64 {
		return false
	}
	return isDomainName(s[at+1:])
}

func isDomainName(domain string) bool {
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}

	for _, label := range labels {
		if label == "" || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, r := range label {
			if r != '-' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return false
			}
		}
	}

	tld := labels[len(labels)-1]
	if strings.HasPrefix(strings.ToLower(tld), "xn--") {
		return len(tld) > 4
	}
	if utf8.RuneCountInString(tld) < 2 {
		return false
	}
	for _, r := range tld {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
