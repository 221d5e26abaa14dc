package validation

// Kind identifies a rule variant.
type Kind int

const (
	KindRequired Kind = iota + 1
	KindOptional
	KindMinLength
	KindNumericRange
	KindOneOf
	KindFormat
)

// FormatKind selects the shape checked by a Format rule.
type FormatKind int

const (
	FormatEmail FormatKind = iota + 1
	FormatISO8601
)

// Rule is one check applied to a field. Only the members relevant to Kind are set.
type Rule struct {
	Kind    Kind
	Message string

	Length int
	Min    *float64
	Max    *float64
	Values []string
	Format FormatKind
}

// Field binds a record key to the rules applied to it, in order.
type Field struct {
	Name  string
	Rules []Rule
}

// Ruleset is an ordered list of fields. Failures are reported in this order.
type Ruleset []Field

// Required fails when the value is absent or an empty string.
func Required(message string) Rule {
	return Rule{Kind: KindRequired, Message: message}
}

// Optional stops evaluation of the field when the value is absent.
func Optional() Rule {
	return Rule{Kind: KindOptional}
}

// MinLength fails when the value has fewer than n characters.
func MinLength(n int, message string) Rule {
	return Rule{Kind: KindMinLength, Length: n, Message: message}
}

// NumericRange fails when the value is not a number or lies outside [min, max].
// A nil bound is open.
func NumericRange(min, max *float64, message string) Rule {
	return Rule{Kind: KindNumericRange, Min: min, Max: max, Message: message}
}

// AtLeast is NumericRange with only a lower bound.
func AtLeast(min float64, message string) Rule {
	return NumericRange(&min, nil, message)
}

// OneOf fails when the value is not one of values.
func OneOf(message string, values ...string) Rule {
	return Rule{Kind: KindOneOf, Values: values, Message: message}
}

// Format fails when the value does not have the given shape.
func Format(kind FormatKind, message string) Rule {
	return Rule{Kind: KindFormat, Format: kind, Message: message}
}
