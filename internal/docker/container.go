package docker

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/moby/moby/client"
)

// Container is a handle to one session container. The supervisor observes
// the container but does not own its lifetime: nothing here stops it.
type Container struct {
	client DockerClient

	ID   string
	Name string
}

// Start starts the container. Returns an error if the container fails to start,
// which may indicate a misconfiguration or an unhealthy Docker daemon.
func (c Container) Start(ctx context.Context) error {
	_, err := c.client.ContainerStart(ctx, c.ID, client.ContainerStartOptions{})
	if err != nil {
		return fmt.Errorf("failed to start container %q: %w\nContainer may be misconfigured or Docker daemon may be unhealthy", c.Name, err)
	}

	return nil
}

// Exec runs a command inside the container and captures its combined
// output. The exec is allocated a TTY so stdout and stderr arrive merged,
// the way an interactive `docker exec` shows them. Cancelling the context
// closes the attach connection and returns whatever output was read.
func (c Container) Exec(ctx context.Context, cmd []string) (string, error) {
	created, err := c.client.ExecCreate(ctx, c.ID, client.ExecCreateOptions{
		Cmd:          cmd,
		AttachStdout: true,
		AttachStderr: true,
		TTY:          true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create exec in container %q: %w\nContainer may not be running", c.Name, err)
	}

	response, err := c.client.ExecAttach(ctx, created.ID, client.ExecAttachOptions{
		TTY: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to attach to exec in container %q: %w\nDocker API may be unreachable", c.Name, err)
	}
	defer response.Conn.Close()

	var buf bytes.Buffer
	done := make(chan error, 1)
	go func() {
		_, err := io.Copy(&buf, response.Reader)
		done <- err
	}()

	select {
	case <-ctx.Done():
		response.Conn.Close()
		<-done
		return buf.String(), ctx.Err()
	case err := <-done:
		if err != nil && err != io.EOF {
			return buf.String(), fmt.Errorf("failed to read exec output from container %q: %w", c.Name, err)
		}
	}

	return buf.String(), nil
}

// ForceRemove forcibly removes the container from the Docker daemon, even if
// it is still running. The supervisor never calls this on its own; it exists
// for teardown by tests and operators.
func (c Container) ForceRemove(ctx context.Context) error {
	_, err := c.client.ContainerRemove(ctx, c.ID, client.ContainerRemoveOptions{
		Force: true,
	})
	if err != nil {
		return fmt.Errorf("failed to force remove container %q: %w\nContainer may be in an inconsistent state", c.Name, err)
	}

	return nil
}
