package blog_test

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/blog/pkg/blogsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and shared assertions for the blog end-to-end tests.
 * The suite needs a working Docker daemon and is skipped with -short.
 */

const (
	testImageName = "blog-e2e-test:latest"

	testPassword = "correct horse battery staple"
)

var imageBuilt bool

// TestMain builds the service image once before all tests and removes it
// after they complete.
func TestMain(m *testing.M) {
	flag.Parse()
	if !testing.Short() && dockerAvailable() {
		fmt.Fprintf(os.Stdout, "Building Blog Service Docker image...")
		if err := buildDockerImage(); err != nil {
			fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stdout, " done\n")
		imageBuilt = true
	}

	exitCode := m.Run()

	if imageBuilt {
		fmt.Fprintf(os.Stdout, "Cleaning up Blog Service Docker image...")
		cleanupDockerImage()
		fmt.Fprintf(os.Stdout, " done\n")
	}

	os.Exit(exitCode)
}

func dockerAvailable() bool {
	return exec.Command("docker", "info").Run() == nil
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/blog/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

// setupBlogContainer starts the service with relaxed rate limits and returns
// a client for it.
func setupBlogContainer(t *testing.T) *blogsdk.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("e2e tests are skipped with -short")
	}
	if !imageBuilt {
		t.Skip("docker is not available")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Env: map[string]string{
				"BLOG_ISSUER":    "blog-e2e",
				"BLOG_ALGORITHM": "EdDSA",
				"ENV":            "test",
				"LOG_LEVEL":      "info",
				"LOG_FORMAT":     "json",

				"RATELIMIT_STRICT_REQUESTS":   "1000",
				"RATELIMIT_STRICT_WINDOW":     "1m",
				"RATELIMIT_STRICT_BURST":      "1000",
				"RATELIMIT_MODERATE_REQUESTS": "1000",
				"RATELIMIT_MODERATE_BURST":    "1000",
			},
			WaitingFor: wait.ForHTTP("/livez").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	return blogsdk.NewClient(fmt.Sprintf("http://%s:%s", host, port.Port()))
}

// signup registers username and returns a logged-in session.
func signup(t *testing.T, client *blogsdk.Client, username string) *blogsdk.Session {
	t.Helper()

	resp, err := client.Register(t.Context(), blogsdk.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)
	require.Equal(t, username, resp.User.Username)
	require.Equal(t, "User Created Successfully", resp.Message)

	session, err := client.Login(t.Context(), username, testPassword)
	require.NoError(t, err)
	return session
}

// requireAPIError asserts err is an *blogsdk.APIError with the given status.
func requireAPIError(t *testing.T, err error, status int) *blogsdk.APIError {
	t.Helper()

	var apiErr *blogsdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected *blogsdk.APIError, got %T: %v", err, err)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Error())
	return apiErr
}

func assertHealthy(t *testing.T, health *blogsdk.HealthResponse, err error) {
	t.Helper()

	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
	require.NotEmpty(t, health.Version)
}
