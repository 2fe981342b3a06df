package source

import (
	"errors"
	"fmt"
	"io/fs"
)

// Retrieval errors. All of them are wrapped with the offending location.
var (
	// ErrNotFound is returned when a local path does not exist, or a remote
	// server reports the resource missing. It matches fs.ErrNotExist.
	ErrNotFound = fmt.Errorf("ontology source not found: %w", fs.ErrNotExist)

	// ErrUnsupportedScheme is returned for locations other than http, https,
	// ftp, file or a plain path.
	ErrUnsupportedScheme = errors.New("unsupported location scheme")

	// ErrFetch is returned when a remote transfer fails.
	ErrFetch = errors.New("fetch failed")

	// ErrTooLarge is returned when a resource exceeds the configured size limit.
	ErrTooLarge = errors.New("content too large")
)
