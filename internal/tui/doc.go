// Package tui provides the terminal pieces of the command-line tools: a
// Bubble Tea URL prompt and an in-place download progress bar.
//
// Both are only used when the relevant stream is a terminal. Prompt falls
// back to reading one line, and callers skip ProgressView entirely for
// redirected output.
package tui
