package processing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// RunLogName is the per-output-directory change log.
const RunLogName = "mkv_process_log.txt"

const runLogTimeLayout = "2006-01-02 15:04:05.000000"

// appendRunLog writes one block per processed file:
//
//	(blank line)
//	[2024-05-01 10:00:00.000000] Show.S01E01.mkv
//	  - Renamed to: ...
//
// The file lock serializes concurrent mkvcleaner runs sharing an output dir.
func (p *Processor) appendRunLog(dir, name string, changes []string) error {
	path := filepath.Join(dir, RunLogName)
	lock := flock.New(path)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock run log: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	var b strings.Builder
	fmt.Fprintf(&b, "\n[%s] %s\n", p.now().Format(runLogTimeLayout), name)
	for _, change := range changes {
		fmt.Fprintf(&b, "  - %s\n", change)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	if _, err := file.WriteString(b.String()); err != nil {
		_ = file.Close()
		return fmt.Errorf("write run log: %w", err)
	}
	return file.Close()
}
