package internal

import "fmt"

// ValidationError reports a missing or unusable image directory. It is
// fatal: no launch is attempted once validation fails.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid image directory %q: %s", e.Path, e.Reason)
}

// LaunchError reports that the Docker daemon rejected the launch of a new
// session. It is fatal and never retried.
type LaunchError struct {
	Name SessionName
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch session %q: %v\nCheck that the image exists and the published ports are free", e.Name, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// ParseError represents a TOML decode failure in a config file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
