package irareports

import (
	"errors"
	"fmt"

	"github.com/tulumbas/irareports/pkg/irareports/loader"
	"github.com/tulumbas/irareports/pkg/irareports/workbook"
)

// ErrFileNotFound indicates the catalog file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidConfig indicates a configuration value failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrNoUsableSheet indicates a channel file without a "<channel> - <yyyy-MM-dd>" first sheet.
var ErrNoUsableSheet = loader.ErrNoUsableSheet

// ErrSheetNotFound indicates a required sheet is missing.
var ErrSheetNotFound = workbook.ErrSheetNotFound

// FileError represents a failure processing one input or output file.
type FileError struct {
	Path  string
	Stage string // "catalog", "channel", "report"
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError creates a new FileError.
func NewFileError(path, stage string, err error) *FileError {
	return &FileError{
		Path:  path,
		Stage: stage,
		Err:   err,
	}
}
