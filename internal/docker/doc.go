// Package docker provides the container-runtime capability layer for
// playgroundctl.
//
// It wraps the slice of the Docker Engine API the supervisor drives:
// listing containers by name, launching a detached session, and executing
// observation commands inside it. The Client type is the entry point for
// all Docker operations.
package docker
