// Package preflight provides readiness checks for the external programs and
// filesystem paths a vid2srt run depends on.
//
// The "vid2srt check" command renders these results as a table; the pipeline
// calls CheckSystemDeps before extracting audio so a missing binary is
// reported by name instead of as an exec failure.
package preflight
