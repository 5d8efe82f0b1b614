package docker

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultVersion is the ClickHouse image tag used when none is given.
	DefaultVersion = "25.7"

	// HTTPPort is the container port of ClickHouse's HTTP interface.
	HTTPPort = "8123/tcp"

	startupTimeout = 5 * time.Minute
)

type (
	// Options configures the ClickHouse container.
	Options struct {
		// Version is the clickhouse/clickhouse-server tag, without the -alpine suffix.
		Version string

		// Database is created on startup and used by the DSN.
		Database string

		// ConfigDir is mounted as /etc/clickhouse-server/config.d when set. Relative paths
		// are resolved against the working directory.
		ConfigDir string
	}

	// Container runs a throwaway ClickHouse server for integration tests.
	Container struct {
		options   Options
		container *clickhouse.ClickHouseContainer
	}
)

// New creates a container with the given options. Nothing runs until Start.
//
// Example:
//
//	ch := docker.New(docker.Options{Database: "analytics"})
//	if err := ch.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer ch.Stop(ctx)
//
//	dsn, err := ch.GetDSN(ctx)
func New(opts Options) *Container {
	return &Container{options: opts}
}

// Start starts the ClickHouse container and waits for its HTTP interface.
func (c *Container) Start(ctx context.Context) error {
	if c.container != nil {
		return errors.New("container is already running")
	}

	version := c.options.Version
	if version == "" {
		version = DefaultVersion
	}

	customizers := []testcontainers.ContainerCustomizer{
		clickhouse.WithUsername("default"),
		clickhouse.WithPassword(""),
		testcontainers.WithEnv(map[string]string{"CLICKHOUSE_DEFAULT_ACCESS_MANAGEMENT": "1"}),
		testcontainers.WithWaitStrategyAndDeadline(
			startupTimeout,
			wait.ForHTTP("/").
				WithPort(HTTPPort).
				WithStatusCodeMatcher(func(status int) bool { return status == 200 }),
		),
	}

	if c.options.Database != "" {
		customizers = append(customizers, clickhouse.WithDatabase(c.options.Database))
	}

	if c.options.ConfigDir != "" {
		configDir, err := filepath.Abs(c.options.ConfigDir)
		if err != nil {
			return errors.Wrapf(err, "failed to get absolute path for ConfigDir: %s", c.options.ConfigDir)
		}

		customizers = append(customizers, testcontainers.WithHostConfigModifier(func(hc *container.HostConfig) {
			hc.Mounts = append(hc.Mounts, mount.Mount{
				Type:   mount.TypeBind,
				Source: configDir,
				Target: "/etc/clickhouse-server/config.d",
			})
		}))
	}

	ch, err := clickhouse.Run(ctx, fmt.Sprintf("clickhouse/clickhouse-server:%s-alpine", version), customizers...)
	if err != nil {
		return errors.Wrap(err, "failed to start ClickHouse container")
	}

	c.container = ch
	return nil
}

// Stop terminates the container. Stopping a container that isn't running is a no-op.
func (c *Container) Stop(ctx context.Context) error {
	if c.container == nil {
		return nil
	}

	err := c.container.Terminate(ctx)
	c.container = nil
	if err != nil {
		return errors.Wrap(err, "failed to stop ClickHouse container")
	}
	return nil
}

// GetDSN returns the native protocol DSN of the running container.
func (c *Container) GetDSN(ctx context.Context) (string, error) {
	if c.container == nil {
		return "", errors.New("container is not running")
	}

	dsn, err := c.container.ConnectionString(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to get connection string")
	}
	return dsn, nil
}

// GetHTTPDSN returns the base URL of the HTTP interface.
func (c *Container) GetHTTPDSN(ctx context.Context) (string, error) {
	if c.container == nil {
		return "", errors.New("container is not running")
	}

	host, err := c.container.Host(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to get container host")
	}

	port, err := c.container.MappedPort(ctx, HTTPPort)
	if err != nil {
		return "", errors.Wrap(err, "failed to get container port")
	}

	return fmt.Sprintf("http://%s:%s", host, port.Port()), nil
}

// IsRunning returns true if the container is currently running
func (c *Container) IsRunning() bool {
	return c.container != nil
}
