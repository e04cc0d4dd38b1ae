package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mkvcleaner/internal/config"
	"mkvcleaner/internal/testsupport"
)

// stubMkvmerge answers --version and -J, and for a mux prints progress and
// creates the -o target.
const stubMkvmerge = `#!/bin/sh
case "$1" in
--version)
	echo "mkvmerge v80.0 ('Roundabout') 64-bit"
	exit 0
	;;
-J)
	cat <<'JSON'
{"container":{"recognized":true,"properties":{"title":"Release"}},
 "tracks":[
  {"id":0,"type":"video","codec":"AVC/H.264/MPEG-4p10","properties":{"language":"und"}},
  {"id":1,"type":"audio","codec":"AC-3","properties":{"language":"eng","track_name":"English 5.1"}},
  {"id":2,"type":"audio","codec":"AC-3","properties":{"language":"ger"}},
  {"id":3,"type":"subtitles","codec":"SubRip/SRT","properties":{"language":"eng"}},
  {"id":4,"type":"subtitles","codec":"SubRip/SRT","properties":{"language":"fre"}}
 ],
 "errors":[]}
JSON
	exit 0
	;;
esac
out=""
while [ $# -gt 0 ]; do
	if [ "$1" = "-o" ]; then
		out="$2"
	fi
	shift
done
echo "Progress: 50%"
echo "Progress: 100%"
if [ -n "$out" ]; then
	: > "$out"
fi
exit 0
`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	home := filepath.Join(t.TempDir(), "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("MKVCLEANER_OUTPUT_DIR", "")

	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	if err := os.WriteFile(cfg.MKVToolNix.MkvmergePath, []byte(stubMkvmerge), 0o755); err != nil {
		t.Fatalf("write mkvmerge stub: %v", err)
	}

	configPath := filepath.Join(home, ".config", "mkvcleaner", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: testsupport.BaseDir(cfg)}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
default_output_dir = %q
log_dir = %q
state_dir = %q

[languages]
allowed_audio = ["eng"]
allowed_subtitle = ["eng"]

[mkvtoolnix]
mkvmerge_path = %q
mkvextract_path = %q

[logging]
level = "error"
`,
		cfg.Paths.DefaultOutputDir,
		cfg.Paths.LogDir,
		cfg.Paths.StateDir,
		cfg.MKVToolNix.MkvmergePath,
		cfg.MKVToolNix.MkvextractPath,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func writeMKV(t *testing.T, dir, name string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("matroska"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
