package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/docker/cli/cli/streams"
	"github.com/moby/term"

	"github.com/smqtk-iqr/playgroundctl/internal"
	"github.com/smqtk-iqr/playgroundctl/internal/docker"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("panic occurred: %v", r)
			os.Exit(1)
		}
	}()

	if err := run(os.Args, os.Environ()); err != nil {
		log.Fatal(err)
	}
}

func run(args, env []string) error {
	cleanupMgr := internal.NewCleanupManager()
	defer cleanupMgr.Execute()

	config, err := internal.ParseConfig(args[1:], env)
	if err != nil {
		return err
	}

	// Create context with cancellation for proper goroutine cleanup
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals to cancel context; the session container is
	// deliberately left running when the supervisor exits.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	w := internal.NewStandardWriter()

	client, err := docker.NewDefaultClient()
	if err != nil {
		return fmt.Errorf("failed to create docker client: %w\nMake sure Docker is installed and running (try 'docker ps')", err)
	}
	cleanupMgr.Add("docker-client", func() error {
		client.Close()
		return nil
	})

	if _, err := client.Ping(ctx); err != nil {
		return fmt.Errorf("failed to reach docker daemon: %w\nMake sure Docker is running and DOCKER_HOST is set correctly", err)
	}

	session, err := internal.EnsureSession(ctx, client, config, w)
	if err != nil {
		return err
	}

	_, stdout, _ := term.StdStreams()
	watcher := internal.NewWatcher(session, config, streams.NewOut(stdout), internal.DefaultStyles())

	err = watcher.Watch(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to watch session %q: %w", config.ContainerName, err)
	}

	return nil
}
