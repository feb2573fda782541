package loader

import (
	"errors"
	"fmt"
)

// ErrNoUsableSheet indicates a channel file whose first sheet is not named "<channel> - <yyyy-MM-dd>".
var ErrNoUsableSheet = errors.New("no usable channel sheet")

// SheetError represents a failure reading a particular sheet of a file.
type SheetError struct {
	Path      string
	SheetName string
	Err       error
}

func (e *SheetError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("sheet %q: %v", e.SheetName, e.Err)
	}
	return fmt.Sprintf("%s: sheet %q: %v", e.Path, e.SheetName, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(path, sheetName string, err error) *SheetError {
	return &SheetError{
		Path:      path,
		SheetName: sheetName,
		Err:       err,
	}
}
