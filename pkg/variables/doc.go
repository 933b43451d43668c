// Package variables declares the variables a template accepts and turns
// user-supplied values into a types.Context.
//
// A Schema is an ordered list of Fields. Build coerces provided values to
// each field's Kind, fills defaults in declared order and reports every
// required field that is still missing. String defaults are themselves
// templated, so a field can be derived from the ones declared before it:
//
//	{Name: "pythonName", Default: "<%= name %>", Transform: TransformSnake}
package variables
