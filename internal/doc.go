// Package internal contains the core logic of playgroundctl.
//
// It provides configuration parsing, the session ensurer, the status
// watcher, cleanup orchestration, and I/O abstractions shared with the
// docker package.
package internal
