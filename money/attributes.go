package money

// copyAttributes copies the metadata of m and source to target,
// a value just derived from them by an operation.
//
// The parent computations create values without formatting metadata,
// so only the decimal places survive: when m or source sets them,
// target gets the largest effective number of decimal places of the
// money operands, values without a hint counting with the environment
// default. Operands without metadata, such as numbers, contribute
// nothing. If no operand sets them, target is returned unchanged and
// keeps falling back to the default.
func (m Money) copyAttributes(source Operand, target Money) Money {
	places, ok := maxDecimalPlaces(m, source)
	if ok {
		target.decimalPlaces = places
		target.hasDecimalPlaces = true
	}

	return target
}

func maxDecimalPlaces(candidates ...Operand) (int32, bool) {
	var (
		places   int32
		explicit bool
		found    bool
	)

	for _, c := range candidates {
		m, ok := c.(Money)
		if !ok {
			continue
		}

		explicit = explicit || m.hasDecimalPlaces

		if effective := m.DecimalPlaces(); !found || effective > places {
			places = effective
			found = true
		}
	}

	return places, explicit
}
