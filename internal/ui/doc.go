// Package ui implements a terminal progress view using bubbletea's Elm
// architecture.
//
// Unlike an interactive picker, the view is passive: the pipeline engines
// run in their own goroutine and stream [tasks.ProgressUpdate] values over a
// channel; the (view) [Model] renders a spinner, a progress bar, and the
// most recent events. The view exits when the channel closes (run complete)
// or on q/ctrl+c, which cancels the pipeline context.
//
// Log output should be redirected to a file while the view owns the
// terminal; see shared.NewFileLogger.
package ui
