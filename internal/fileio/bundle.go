// Package fileio implements the editor's file boundary: saving a content
// bundle to a downloadable JSON file, loading one back with schema
// validation, and the spreadsheet-row import adapter for bulk card authoring.
package fileio

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"cardsmith/internal/content"
	"cardsmith/internal/schema"
)

// FileError is a user-facing file boundary failure: unreadable file, wrong
// type, or a document that does not match the expected schema. The message
// is suitable for direct display; Violations carries per-field detail when
// schema validation failed.
type FileError struct {
	Path       string
	Message    string
	Violations []schema.ValidationError
	Err        error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *FileError) Unwrap() error { return e.Err }

// IsFileError returns true if err is a file boundary failure.
func IsFileError(err error) bool {
	var fe *FileError
	return errors.As(err, &fe)
}

// SaveBundle writes a content bundle as pretty-printed JSON. A ".json"
// extension is appended when the name lacks one, matching the editor's
// download naming.
func SaveBundle(path string, bundle content.ContentBundle) error {
	if !strings.HasSuffix(path, ".json") {
		path += ".json"
	}

	data, err := json.MarshalIndent(bundle.Normalize(), "", "    ")
	if err != nil {
		return &FileError{Path: path, Message: "failed to encode content", Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &FileError{Path: path, Message: "failed to store file", Err: err}
	}
	return nil
}

// LoadBundle reads and validates a content bundle file. Schema violations
// are returned as a FileError with per-field detail; callers at the import
// boundary treat any error as "no data available".
func LoadBundle(path string) (content.ContentBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return content.ContentBundle{}, &FileError{Path: path, Message: "failed to load file", Err: err}
	}
	return DecodeBundle(path, data)
}

// DecodeBundle validates and decodes content bundle bytes.
func DecodeBundle(path string, data []byte) (content.ContentBundle, error) {
	if violations := schema.ValidateBundle(data); violations != nil {
		return content.ContentBundle{}, &FileError{
			Path:       path,
			Message:    fmt.Sprintf("file does not match the content format (%d problems)", len(violations)),
			Violations: violations,
		}
	}

	var bundle content.ContentBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return content.ContentBundle{}, &FileError{Path: path, Message: "failed to decode content", Err: err}
	}
	return bundle.Normalize(), nil
}
