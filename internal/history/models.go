package history

import "time"

// Status is the outcome recorded for a source file.
type Status string

const (
	// StatusProcessed marks a file that was remuxed successfully.
	StatusProcessed Status = "processed"
	// StatusFailed marks a tool or I/O failure; the next run retries it.
	StatusFailed Status = "failed"
	// StatusReview marks input the user has to look at before retrying.
	StatusReview Status = "review"
)

// Entry is one row of the processed-file history.
type Entry struct {
	ID           int64     `json:"id" yaml:"id"`
	SourcePath   string    `json:"source_path" yaml:"source_path"`
	SourceSize   int64     `json:"source_size" yaml:"source_size"`
	SourceMTime  time.Time `json:"source_mtime" yaml:"source_mtime"`
	OutputPath   string    `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	Title        string    `json:"title,omitempty" yaml:"title,omitempty"`
	Status       Status    `json:"status" yaml:"status"`
	ErrorMessage string    `json:"error,omitempty" yaml:"error,omitempty"`
	RunID        string    `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Changes      []string  `json:"changes,omitempty" yaml:"changes,omitempty"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" yaml:"updated_at"`
}

// Matches reports whether the recorded source fingerprint equals the given
// size and modification time.
func (e Entry) Matches(size int64, mtime time.Time) bool {
	return e.SourceSize == size && e.SourceMTime.Equal(mtime)
}
