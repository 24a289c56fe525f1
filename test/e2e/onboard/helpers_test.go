package onboard_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/shiftline/workforce/pkg/onboardsdk"
)

/*
 * Common constants and helper functions for onboarding service end-to-end
 * tests: container setup, seeded admin access, and assertions.
 */

const (
	testImageName = "shiftline-onboard-test:latest"

	adminEmail    = "admin@shiftline.test"
	adminPassword = "Admin123!pass"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Onboard Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Onboard Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/onboard/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// setupOnboardContainer starts the onboarding service in a container with
// relaxed rate limits and returns the base URL.
func setupOnboardContainer(t *testing.T) (string, func()) {
	t.Helper()

	return startContainer(t, map[string]string{
		"ONBOARD_DATABASE_FILE":  "/onboard.db",
		"ONBOARD_PEPPER_FILE":    "/pepper",
		"ONBOARD_ISSUER":         "shiftline-onboard",
		"ONBOARD_ADMIN_EMAIL":    adminEmail,
		"ONBOARD_ADMIN_PASSWORD": adminPassword,
		"ENV":                    "test",
		"LOG_LEVEL":              "info",
		"LOG_FORMAT":             "json",
		"MAIL_MODE":              "log",
		// Relaxed limits so rapid test requests do not trip the strict
		// production defaults.
		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	})
}

// setupOnboardContainerWithDefaultRateLimits starts the service with the
// production rate limits, for the tests that exercise limiting itself.
func setupOnboardContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()

	return startContainer(t, map[string]string{
		"ONBOARD_DATABASE_FILE":  "/onboard.db",
		"ONBOARD_PEPPER_FILE":    "/pepper",
		"ONBOARD_ISSUER":         "shiftline-onboard",
		"ONBOARD_ADMIN_EMAIL":    adminEmail,
		"ONBOARD_ADMIN_PASSWORD": adminPassword,
		"ENV":                    "test",
		"LOG_LEVEL":              "info",
		"LOG_FORMAT":             "json",
		"MAIL_MODE":              "log",
	})
}

func startContainer(t *testing.T, env map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// adminSession logs in as the seeded bootstrap admin. The container is
// started with ONBOARD_ADMIN_EMAIL/PASSWORD so the first operator exists
// without going through an invite.
func adminSession(t *testing.T, baseURL string) *onboardsdk.Session {
	t.Helper()
	ctx := context.Background()

	client := onboardsdk.NewSDKClient(baseURL)
	session, err := client.AuthenticateWithPassword(ctx, adminEmail, adminPassword)
	require.NoError(t, err, "admin seed account must be able to log in")
	return session
}

// requireAPIError asserts err is an *onboardsdk.APIError with the given
// status and code.
func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()

	var apiErr *onboardsdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected APIError, got %v", err)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}
