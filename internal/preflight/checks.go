package preflight

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"mkvcleaner/internal/config"
	"mkvcleaner/internal/deps"
)

// Versioner reports the version banner of an external tool.
type Versioner interface {
	Version(ctx context.Context) (string, error)
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

// CheckTools resolves mkvmerge and mkvextract. mkvextract becomes required
// once subtitle extraction is enabled.
func CheckTools(_ context.Context, cfg *config.Config) []Result {
	return toolResults(deps.CheckMkvToolNix(cfg.MkvmergeBinary(), cfg.MkvextractBinary()), cfg.Subtitles.Extract)
}

func toolResults(statuses []deps.Status, extract bool) []Result {
	results := make([]Result, 0, len(statuses))
	for _, status := range statuses {
		optional := status.Optional && !extract
		result := Result{Name: status.Name, Passed: status.Available, Optional: optional}
		switch {
		case status.Available:
			result.Detail = status.Command
		case optional:
			result.Detail = fmt.Sprintf("%s (%s)", status.Detail, status.Description)
		default:
			result.Detail = status.Detail
		}
		results = append(results, result)
	}
	return results
}

// CheckVersion asks the tool for its version with a short timeout.
func CheckVersion(ctx context.Context, name string, v Versioner) Result {
	if v == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	version, err := v.Version(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("version check failed (%v)", err)}
	}
	if version == "" {
		return Result{Name: name, Detail: "no version reported"}
	}
	return Result{Name: name, Passed: true, Detail: version}
}
