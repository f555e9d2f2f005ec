package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"tssk/internal/sonarr"
)

// SonarrCheck names the Sonarr reachability result.
const SonarrCheck = "Sonarr"

// CheckSonarr verifies that Sonarr answers the health endpoint with the
// configured key. It makes a single attempt per candidate API root.
func CheckSonarr(ctx context.Context, baseURL, apiKey string) Result {
	name := SonarrCheck

	if strings.TrimSpace(baseURL) == "" {
		return Result{Name: name, Detail: "missing url"}
	}
	if strings.TrimSpace(apiKey) == "" {
		return Result{Name: name, Detail: "missing api key"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := sonarr.New(baseURL, apiKey,
		sonarr.WithHTTPClient(&http.Client{Timeout: 5 * time.Second}),
		sonarr.WithRetry(1, 0),
	)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	api, err := client.Discover(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: summarizeNetError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "Reachable at " + api}
}

// CheckTMDB reports whether ended series can be told apart from cancelled
// ones. A missing key is not a failure.
func CheckTMDB(apiKey string) Result {
	const name = "TMDB"
	if strings.TrimSpace(apiKey) == "" {
		return Result{Name: name, Passed: true, Detail: "Not configured (cancelled series are reported as ended)"}
	}
	return Result{Name: name, Passed: true, Detail: "API key configured"}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
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

func summarizeNetError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (Sonarr unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (Sonarr unreachable)"
	}
	return err.Error()
}
