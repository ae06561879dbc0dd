// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution, and defines the CommandRunner abstraction so git
// invocations can be replaced by recording doubles in tests.
package execshell
