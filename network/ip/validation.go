package ip

import "fmt"

// ValidationCode identifies a non-fatal syntax violation found while parsing
// an address literal. Parsing continues after one is reported.
type ValidationCode uint8

const (
	// IPv4EmptyPart is reported when the input ends with a '.'.
	IPv4EmptyPart ValidationCode = iota + 1
	// IPv4NonDecimalPart is reported for every octal or hexadecimal component.
	IPv4NonDecimalPart
	// IPv4OutOfRangePart is reported for every component greater than 255.
	// A non-last component out of range fails the parse right after.
	IPv4OutOfRangePart
	// IPv4EmptyInput is reported when the whole input is empty.
	IPv4EmptyInput
)

var validationCodeNames = map[ValidationCode]string{
	IPv4EmptyPart:      "IPv4-empty-part",
	IPv4NonDecimalPart: "IPv4-non-decimal-part",
	IPv4OutOfRangePart: "IPv4-out-of-range-part",
	IPv4EmptyInput:     "IPv4-empty-input",
}

func (c ValidationCode) String() string {
	if name, ok := validationCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ValidationCode(%d)", uint8(c))
}

type ValidationError struct {
	Code  ValidationCode
	Input string
	// Component is the index of the offending dotted component, or -1 when
	// the violation concerns the whole input.
	Component int
}

func (e ValidationError) Error() string {
	if e.Component < 0 {
		return fmt.Sprintf("%s in %q", e.Code, e.Input)
	}
	return fmt.Sprintf("%s in %q (component %d)", e.Code, e.Input, e.Component)
}

// ValidationFunc observes validation errors. It must not retain Input beyond
// the call if the caller reuses its buffers.
type ValidationFunc func(ValidationError)

// Report invokes f if it is not nil.
func (f ValidationFunc) Report(e ValidationError) {
	if f != nil {
		f(e)
	}
}
