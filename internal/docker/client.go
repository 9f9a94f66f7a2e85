package docker

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/moby/moby/api/types/container"
	"github.com/moby/moby/api/types/network"
	"github.com/moby/moby/client"
)

// PortMapping publishes one container port on a host port.
type PortMapping struct {
	HostPort      int
	ContainerPort int
}

// LaunchSpec describes a detached container launch: the unique session
// name, the image reference, entrypoint arguments, published ports, and
// volume bindings.
type LaunchSpec struct {
	Name  string
	Image string
	Cmd   []string
	Ports []PortMapping
	Binds []string
}

type Client struct {
	client DockerClient
}

// NewClient creates a Client that wraps the provided Docker client interface.
func NewClient(dockerClient DockerClient) Client {
	return Client{
		client: dockerClient,
	}
}

// NewDefaultClient creates a Client with a real Docker client from the environment.
func NewDefaultClient() (Client, error) {
	cli, err := client.New(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return Client{}, fmt.Errorf("failed to create docker client: %w\nEnsure Docker is running and DOCKER_HOST is set correctly", err)
	}

	return NewClient(cli), nil
}

// Close closes the underlying Docker client connection.
func (c Client) Close() {
	c.client.Close()
}

// Ping pings the Docker daemon and returns the API version if successful.
// Used as a preflight check before driving the session.
func (c Client) Ping(ctx context.Context) (string, error) {
	ping, err := c.client.Ping(ctx, client.PingOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to ping docker daemon: %w", err)
	}
	return ping.APIVersion, nil
}

// FindContainer looks up a container by name across every lifecycle state,
// running or stopped. The daemon reports names with a leading slash, which
// is tolerated here. Returns the container handle and whether it was found.
func (c Client) FindContainer(ctx context.Context, name string) (Container, bool, error) {
	result, err := c.client.ContainerList(ctx, client.ContainerListOptions{
		All: true,
	})
	if err != nil {
		return Container{}, false, fmt.Errorf("failed to list containers: %w\nDocker daemon may be unreachable", err)
	}

	for _, item := range result.Items {
		for _, candidate := range item.Names {
			if strings.TrimPrefix(candidate, "/") == name {
				return Container{
					ID:     item.ID,
					Name:   name,
					client: c.client,
				}, true, nil
			}
		}
	}

	return Container{}, false, nil
}

// LaunchContainer creates and starts a detached container described by the
// launch spec. The create and start are a single logical launch; a failure
// in either surfaces as a launch failure. No return value from the
// container itself is interpreted.
func (c Client) LaunchContainer(ctx context.Context, spec LaunchSpec) (Container, error) {
	exposed := network.PortSet{}
	bindings := network.PortMap{}
	for _, mapping := range spec.Ports {
		if mapping.ContainerPort < 1 || mapping.ContainerPort > 65535 {
			return Container{}, fmt.Errorf("invalid container port %d", mapping.ContainerPort)
		}
		if mapping.HostPort < 1 || mapping.HostPort > 65535 {
			return Container{}, fmt.Errorf("invalid host port %d", mapping.HostPort)
		}
		port := network.MustParsePort(strconv.Itoa(mapping.ContainerPort) + "/tcp")
		exposed[port] = struct{}{}
		bindings[port] = []network.PortBinding{{HostPort: strconv.Itoa(mapping.HostPort)}}
	}

	response, err := c.client.ContainerCreate(ctx, client.ContainerCreateOptions{
		Config: &container.Config{
			Image:        spec.Image,
			Cmd:          spec.Cmd,
			ExposedPorts: exposed,
		},
		HostConfig: &container.HostConfig{
			Binds:        spec.Binds,
			PortBindings: bindings,
		},
		Name: spec.Name,
	})
	if err != nil {
		return Container{}, fmt.Errorf("failed to create container %q from image %q: %w\nEnsure the image exists and the name is not already taken", spec.Name, spec.Image, err)
	}

	created := Container{
		ID:     response.ID,
		Name:   spec.Name,
		client: c.client,
	}

	err = created.Start(ctx)
	if err != nil {
		return Container{}, err
	}

	return created, nil
}
