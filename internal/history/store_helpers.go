package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		id           int64
		sourcePath   string
		sourceSize   int64
		sourceMTime  int64
		outputPath   sql.NullString
		title        sql.NullString
		statusStr    string
		errorMessage sql.NullString
		runID        sql.NullString
		changesJSON  sql.NullString
		createdRaw   sql.NullString
		updatedRaw   sql.NullString
	)
	if err := scanner.Scan(
		&id,
		&sourcePath,
		&sourceSize,
		&sourceMTime,
		&outputPath,
		&title,
		&statusStr,
		&errorMessage,
		&runID,
		&changesJSON,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:           id,
		SourcePath:   sourcePath,
		SourceSize:   sourceSize,
		SourceMTime:  time.Unix(0, sourceMTime).UTC(),
		OutputPath:   outputPath.String,
		Title:        title.String,
		Status:       Status(statusStr),
		ErrorMessage: errorMessage.String,
		RunID:        runID.String,
	}
	if changesJSON.Valid && changesJSON.String != "" {
		if err := json.Unmarshal([]byte(changesJSON.String), &entry.Changes); err != nil {
			return nil, fmt.Errorf("decode changes: %w", err)
		}
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		entry.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		entry.UpdatedAt = updated
	}
	return entry, nil
}

func marshalChanges(changes []string) (any, error) {
	if len(changes) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(changes)
	if err != nil {
		return nil, fmt.Errorf("encode changes: %w", err)
	}
	return string(data), nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
