// Package docbuild generates the Doxygen XML tree consumed by the documentation
// renderer.
//
// A run is a fixed chain of steps:
//
//	preflight -> create-directory -> configure -> build -> verify-output
//
// The first failing step ends the run with a BuildFailure. External commands
// run with their working directory set to the build directory through
// exec.Cmd.Dir; the process working directory is never changed, so nothing has
// to be restored when a step fails.
//
// Whether a run happens at all is decided by the caller (RunGated takes the
// already evaluated gate), keeping environment access at the CLI boundary.
package docbuild
