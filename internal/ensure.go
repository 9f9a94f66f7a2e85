package internal

import (
	"context"
	"fmt"
	"os"

	"github.com/smqtk-iqr/playgroundctl/internal/docker"
)

// Runtime is the slice of the container runtime the ensurer needs: listing
// by name and launching a detached session.
type Runtime interface {
	FindContainer(ctx context.Context, name string) (docker.Container, bool, error)
	LaunchContainer(ctx context.Context, spec docker.LaunchSpec) (docker.Container, error)
}

// EnsureSession guarantees that exactly one container with the configured
// name exists, launching it when absent. The operation is idempotent: an
// existing container, running or stopped, is left untouched and returned
// as-is. The existence check is the sole uniqueness enforcement; a race
// between concurrent invocations surfaces as a launch failure.
//
// Validation of the image directory happens only on the launch path, so a
// re-invocation against a live session needs no arguments.
func EnsureSession(ctx context.Context, runtime Runtime, config Config, w Writer) (docker.Container, error) {
	existing, found, err := runtime.FindContainer(ctx, string(config.ContainerName))
	if err != nil {
		return docker.Container{}, err
	}

	if found {
		w.Printf("session %q already exists, skipping launch\n", config.ContainerName)
		if len(config.Args) > 0 {
			w.Warningf("ignoring launch arguments %v: session %q is already running", []string(config.Args), config.ContainerName)
		}
		return existing, nil
	}

	if err := validateImageDir(config.ImageDir); err != nil {
		return docker.Container{}, err
	}

	session, err := runtime.LaunchContainer(ctx, docker.LaunchSpec{
		Name:  string(config.ContainerName),
		Image: string(config.Ref()),
		Cmd:   []string(config.LaunchArgs()),
		Ports: []docker.PortMapping{
			{HostPort: config.GUIPort, ContainerPort: ContainerGUIPort},
			{HostPort: config.RESTPort, ContainerPort: ContainerRESTPort},
		},
		Binds: config.Binds(),
	})
	if err != nil {
		return docker.Container{}, &LaunchError{Name: config.ContainerName, Err: err}
	}

	w.Printf("launched session %q from image %q\n", config.ContainerName, config.Ref())
	fmt.Fprintf(w.GetWriter(), "GUI on port %d, REST on port %d\n", config.GUIPort, config.RESTPort)

	return session, nil
}

func validateImageDir(imageDir string) error {
	if imageDir == "" {
		return &ValidationError{Path: imageDir, Reason: "an image directory argument is required to launch a new session"}
	}

	info, err := os.Stat(imageDir)
	if os.IsNotExist(err) {
		return &ValidationError{Path: imageDir, Reason: "no such directory"}
	}
	if err != nil {
		return &ValidationError{Path: imageDir, Reason: err.Error()}
	}
	if !info.IsDir() {
		return &ValidationError{Path: imageDir, Reason: "not a directory"}
	}

	return nil
}
