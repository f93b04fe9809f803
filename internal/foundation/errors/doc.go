// Package errors provides the classified error primitives used across refcheck.
//
// Errors carry a category (config, validation, filesystem, network, internal),
// a severity and free-form context. The CLI adapter turns them into a message
// on stderr and an exit code.
//
// Example usage:
//
//	err := errors.WrapError(readErr, errors.CategoryFileSystem, "cannot read ignore file").
//		WithContext("path", ignorePath).
//		Build()
package errors
