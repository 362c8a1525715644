// Package errors provides the classified error type used across doxybridge.
//
// Every failure that leaves the tool is a ClassifiedError carrying a category,
// a severity, a retry strategy and structured context. The CLI adapter maps
// categories to process exit codes.
//
// Example usage:
//
//	err := errors.BuildFailure(errors.StepConfigure, "configure command failed").
//		WithCause(runErr).
//		WithContext(errors.ContextExitCode, 1).
//		Build()
package errors
