package dataprocessing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyFile is returned when an upload has no header row
	ErrEmptyFile = errors.New("file contains no header row")
	// ErrTooManyRows is returned when an upload exceeds the configured row limit
	ErrTooManyRows = errors.New("file exceeds maximum row count")
)

// UnsupportedFormatError is returned when a file's declared format or
// extension is neither comma-separated text nor a spreadsheet workbook.
type UnsupportedFormatError struct {
	Indicator string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Indicator == "" {
		return "unsupported file format: no format given"
	}
	return fmt.Sprintf("unsupported file format: %q", e.Indicator)
}

// MissingColumnsError reports the required columns a row-set lacks
type MissingColumnsError struct {
	Source  string
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("missing required columns in %s data: %s", e.Source, strings.Join(e.Missing, ", "))
}

// IsUnsupportedFormat reports whether err wraps an UnsupportedFormatError
func IsUnsupportedFormat(err error) bool {
	var target *UnsupportedFormatError
	return errors.As(err, &target)
}

// IsMissingColumns reports whether err wraps a MissingColumnsError
func IsMissingColumns(err error) bool {
	var target *MissingColumnsError
	return errors.As(err, &target)
}
