package idl

import "idlglue/report"

// EnumValue is one declared value of an enum: a name with an optional
// explicit integer value.  Unset values default to the previous value plus
// one, or zero for the first.
type EnumValue struct {
	Name string

	// The explicit value, or nil when the value is implicit.
	Value *int
}

// Enum is an enumerated type definition with an ordered value list.
type Enum struct {
	defnBase

	values []EnumValue
}

// NewEnum creates a new enum with the given declared values.
func NewEnum(source report.Location, attributes Attributes, name string, values []EnumValue) *Enum {
	e := &Enum{
		defnBase: newDefnBase(KindEnum, source, attributes, name),
		values:   values,
	}

	e.isType = true
	return e
}

// Values returns the enum's values in declaration order.
func (e *Enum) Values() []EnumValue { return e.values }

// NumericValues returns the concrete integer value of each declared value,
// in declaration order, applying the previous-plus-one defaulting rule.
func (e *Enum) NumericValues() []int {
	numbers := make([]int, len(e.values))
	next := 0
	for ndx, value := range e.values {
		if value.Value != nil {
			next = *value.Value
		}

		numbers[ndx] = next
		next++
	}

	return numbers
}

func (e *Enum) FinalType() (Definition, error) {
	return e, nil
}

func (e *Enum) modelName() (string, error) {
	return "enum", nil
}

func (e *Enum) objects() []Definition {
	return []Definition{e}
}
