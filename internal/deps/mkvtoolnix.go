package deps

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	mkvmergeName   = "mkvmerge"
	mkvextractName = "mkvextract"
)

// wellKnownDirs lists MKVToolNix install locations checked after PATH.
var wellKnownDirs = map[string][]string{
	"linux": {
		"/usr/bin",
		"/usr/local/bin",
		"/snap/bin",
		"/opt/mkvtoolnix/bin",
		"~/.local/bin",
		"/usr/local/mkvtoolnix/bin",
	},
	"darwin": {
		"/usr/local/bin",
		"/opt/homebrew/bin",
		"/usr/bin",
		"/Applications/MKVToolNix.app/Contents/MacOS",
		"/opt/local/bin",
		"~/Applications/MKVToolNix.app/Contents/MacOS",
	},
	"windows": {
		`C:\Program Files\MKVToolNix`,
		`C:\Program Files (x86)\MKVToolNix`,
		`C:\MKVToolNix`,
		`~\AppData\Local\Programs\MKVToolNix`,
	},
}

// ResolveMkvmerge returns the mkvmerge executable to run. A configured path
// wins when it resolves; otherwise PATH is consulted, then the platform's
// well-known install directories. When nothing is found the bare command name
// is returned so the eventual exec error names the missing tool.
func ResolveMkvmerge(configured string) string {
	if resolved, ok := lookup(configured); ok {
		return resolved
	}
	return resolveTool(mkvmergeName)
}

// ResolveMkvextract returns the mkvextract executable. MKVToolNix ships both
// tools side by side, so a sibling of the resolved mkvmerge is preferred over
// a PATH lookup.
func ResolveMkvextract(configured, mkvmerge string) string {
	if resolved, ok := lookup(configured); ok {
		return resolved
	}
	if candidate, ok := siblingCandidate(mkvmerge, mkvextractName); ok {
		if info, err := os.Stat(candidate); err == nil && isExecutable(info) {
			return candidate
		}
	}
	return resolveTool(mkvextractName)
}

// CheckMkvToolNix reports availability of both MKVToolNix binaries.
func CheckMkvToolNix(mkvmerge, mkvextract string) []Status {
	return CheckBinaries([]Requirement{
		{
			Name:        "mkvmerge",
			Command:     mkvmerge,
			Description: "Required for track inspection and remuxing",
		},
		{
			Name:        "mkvextract",
			Command:     mkvextract,
			Description: "Required when subtitle extraction is enabled",
			Optional:    true,
		},
	})
}

func resolveTool(name string) string {
	if path, err := exec.LookPath(executableName(name)); err == nil {
		return path
	}
	for _, dir := range wellKnownDirs[runtime.GOOS] {
		candidate := filepath.Join(expandHome(dir), executableName(name))
		if info, err := os.Stat(candidate); err == nil && isExecutable(info) {
			return candidate
		}
	}
	return executableName(name)
}

func lookup(command string) (string, bool) {
	command = strings.TrimSpace(command)
	if command == "" {
		return "", false
	}
	resolved, err := exec.LookPath(expandHome(command))
	if err != nil {
		return "", false
	}
	return resolved, true
}

func siblingCandidate(toolPath, name string) (string, bool) {
	toolPath = strings.TrimSpace(toolPath)
	if toolPath == "" {
		return "", false
	}
	resolved, err := exec.LookPath(toolPath)
	if err != nil {
		return "", false
	}
	return filepath.Join(filepath.Dir(resolved), executableName(name)), true
}

func executableName(base string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(base), ".exe") {
		return base + ".exe"
	}
	return base
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimLeft(path[1:], `/\`))
}

func isExecutable(info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
