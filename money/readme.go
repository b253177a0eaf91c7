// Package money implements a Money type used to represent
// a monetary amount in web applications, defined by the following properties:
//
// - amount, an arbitrary precision decimal, eg. 97.23.
//
// - currency code, the ISO 4217 shorthand for
// the currency, eg. USD for United States Dollar.
//
// - decimal places, an optional display precision hint that
// survives arithmetic, eg. 2 for cents.
//
// - format options, optional per value formatting overrides
// merged over the environment defaults when the value is rendered.
//
// Arithmetic operations accept an Operand: another Money, a Number
// or a Deferred query expression. Deferred operands are not computed,
// the operation returns the expression built by the operand instead
// so it can be evaluated by the database.
//
// Settings and collaborators (currency converter, formatter, logger)
// are grouped in an Environment bound to each value at construction.
package money
