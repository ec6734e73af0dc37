package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"navicull/internal/config"
	"navicull/internal/services"
	"navicull/internal/services/navidrome"
	"navicull/internal/services/subsonic"
)

const checkTimeout = 10 * time.Second

// CheckCredentials verifies that a username and password are configured.
func CheckCredentials(cfg *config.Config) Result {
	const name = "Credentials"
	if err := cfg.ValidateCredentials(); err != nil {
		return Result{Name: name, Detail: "missing username or password"}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("user %s", cfg.Server.Username)}
}

// CheckServerPing calls the Subsonic ping endpoint with the salted token.
func CheckServerPing(ctx context.Context, cfg *config.Config) Result {
	const name = "Subsonic API"

	client, err := subsonic.NewFromConfig(cfg)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	if err := client.Ping(checkCtx); err != nil {
		var apiErr *subsonic.APIError
		if errors.As(err, &apiErr) {
			return Result{Name: name, Detail: fmt.Sprintf("rejected: %s (code %d)", apiErr.Message, apiErr.Code)}
		}
		return Result{Name: name, Detail: summarizeNetworkError(err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s reachable", cfg.Server.URL)}
}

// CheckNativeLogin verifies the native API accepts the configured account.
func CheckNativeLogin(ctx context.Context, cfg *config.Config) Result {
	const name = "Native API"

	client, err := navidrome.NewFromConfig(cfg)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	if err := client.Login(checkCtx); err != nil {
		if errors.Is(err, services.ErrAuthentication) {
			return Result{Name: name, Detail: "login rejected (check username and password)"}
		}
		return Result{Name: name, Detail: summarizeNetworkError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "login ok"}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func summarizeNetworkError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out (server unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timed out (server unreachable)"
	}
	return err.Error()
}
