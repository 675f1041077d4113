//go:build integration

// Package testsupport starts throwaway infrastructure for integration tests.
package testsupport

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// StartMongo launches a MongoDB container, waits for it to accept
// connections, and returns the running container plus the connection URI.
func StartMongo(ctx context.Context, t *testing.T) (testcontainers.Container, string) {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err)

	return container, fmt.Sprintf("mongodb://%s:%s", host, mappedPort.Port())
}

// TestDatabase returns a unique database name so parallel runs never share
// state.
func TestDatabase() string {
	return "exercise_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
