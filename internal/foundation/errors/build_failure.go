package errors

// Context keys attached to every BuildFailure.
const (
	ContextStep     = "step"
	ContextCommand  = "command"
	ContextExitCode = "exit_code"
	ContextOutput   = "output"
)

// Step names a stage of the documentation build.
type Step string

const (
	StepPreflight       Step = "preflight"
	StepCreateDirectory Step = "create-directory"
	StepConfigure       Step = "configure"
	StepBuild           Step = "build"
	StepVerifyOutput    Step = "verify-output"
)

// BuildFailure starts a fatal, non-retryable build error for the given step.
// All build steps fail with this one kind; the step context tells them apart.
func BuildFailure(step Step, message string) *ErrorBuilder {
	return NewError(CategoryBuild, message).
		Fatal().
		WithContext(ContextStep, string(step))
}

// IsBuildFailure reports whether err (or anything it wraps) is a build failure.
func IsBuildFailure(err error) bool {
	return HasCategory(err, CategoryBuild)
}

// StepOf returns the step a build failure belongs to.
func StepOf(err error) (Step, bool) {
	classified, ok := AsClassified(err)
	if !ok || classified.Category() != CategoryBuild {
		return "", false
	}
	s, ok := classified.Context().GetString(ContextStep)
	return Step(s), ok
}

// ExitCodeOf returns the exit status recorded on a build failure, if any.
func ExitCodeOf(err error) (int, bool) {
	classified, ok := AsClassified(err)
	if !ok {
		return 0, false
	}
	return classified.Context().GetInt(ContextExitCode)
}
