// Package validation provides input validation for credential operations:
// a fluent field validator for hand-rolled checks and a struct-tag validator
// built on go-playground/validator. Both produce structured AppErrors that
// name every failing field.
package validation
