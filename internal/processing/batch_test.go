package processing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/gofrs/flock"

	"mkvcleaner/internal/services"
)

func TestProcessBatchContinuesAfterFailure(t *testing.T) {
	cfg := testConfig(t)
	good := writeSource(t, seriesFile)
	other := writeSource(t, "Movie.2020.mkv")
	missing := filepath.Join(t.TempDir(), "gone.mkv")
	muxer := &fakeMuxer{}
	proc, err := New(cfg, fakeMetadata{tracks: sampleTracks()}, nil, muxer)
	if err != nil {
		t.Fatal(err)
	}

	summary, err := proc.ProcessBatch(context.Background(), []string{good, missing, other})
	if err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}
	if summary.Processed != 2 || summary.Failed != 1 || len(summary.Results) != 3 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.CorrelationID == "" || summary.Results[1].State != StateFailed {
		t.Fatalf("unexpected results: %+v", summary.Results[1])
	}
	if len(muxer.plans) != 2 {
		t.Fatalf("mux calls = %d", len(muxer.plans))
	}
}

func TestProcessBatchStopsOnCancel(t *testing.T) {
	proc, err := New(testConfig(t), fakeMetadata{tracks: sampleTracks()}, nil, &fakeMuxer{})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary, err := proc.ProcessBatch(ctx, []string{writeSource(t, seriesFile)})
	if !errors.Is(err, context.Canceled) || len(summary.Results) != 0 {
		t.Fatalf("ProcessBatch = %+v, %v", summary, err)
	}
}

func TestProcessBatchHonoursLock(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.Paths.StateDir, 0o755); err != nil {
		t.Fatal(err)
	}
	held := flock.New(filepath.Join(cfg.Paths.StateDir, BatchLockName))
	if ok, err := held.TryLock(); err != nil || !ok {
		t.Fatalf("TryLock = %v, %v", ok, err)
	}
	defer func() { _ = held.Unlock() }()

	proc, err := New(cfg, fakeMetadata{}, nil, &fakeMuxer{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := proc.ProcessBatch(context.Background(), nil); !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected lock contention error, got %v", err)
	}
}

func TestCollectInputs(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b.MKV", "a.mkv", "notes.txt", "processed/a.mkv", "season2/c.mkv", "season2/processed/c.mkv"} {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	extra := filepath.Join(root, "notes.txt")
	missing := filepath.Join(root, "missing.mkv")

	proc, err := New(testConfig(t), fakeMetadata{}, nil, &fakeMuxer{})
	if err != nil {
		t.Fatal(err)
	}

	got, err := proc.CollectInputs([]string{root, extra, missing, filepath.Join(root, "a.mkv")}, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(root, "a.mkv"), filepath.Join(root, "b.MKV"), extra, missing}
	if !slices.Equal(got, want) {
		t.Fatalf("non-recursive = %q, want %q", got, want)
	}

	got, err = proc.CollectInputs([]string{root}, true)
	if err != nil {
		t.Fatal(err)
	}
	want = []string{filepath.Join(root, "a.mkv"), filepath.Join(root, "b.MKV"), filepath.Join(root, "season2", "c.mkv")}
	if !slices.Equal(got, want) {
		t.Fatalf("recursive = %q, want %q", got, want)
	}
}
