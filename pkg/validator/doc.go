// Package validator builds small declarative rules and applies them together.
//
// Each rule pairs a check with the message shown when it fails. Apply runs
// every rule and collects the failures into ValidationErrors, which is an
// error and converts to url.Values for form rendering.
//
//	err := validator.Apply(
//	    validator.RequiredString("host", form.Host),
//	    validator.NumBetween("port", form.Port, 1, 65535),
//	)
package validator
