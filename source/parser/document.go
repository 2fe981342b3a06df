// Package parser turns ontology documents into term records.
package parser

import (
	"errors"
	"fmt"

	"github.com/c360studio/semonto/ontology"
)

// Parser errors.
var (
	// ErrSyntax is matched by every *SyntaxError.
	ErrSyntax = errors.New("syntax error")

	// ErrUnsupportedFormat is returned when no parser handles a document.
	ErrUnsupportedFormat = errors.New("unsupported ontology format")
)

// MIME types of the built-in parsers.
const (
	MimeOBO  = "text/obo"
	MimeYAML = "application/yaml"
)

// Document is a parsed ontology document.
type Document struct {
	// Header holds ontology-level tags such as format-version or ontology.
	Header ontology.Metadata

	// Imports lists the declared imports, in order, as written.
	Imports []string

	// Records holds one record per term, in document order.
	Records []ontology.Record

	// Skipped counts stanzas that were not terms, by stanza type.
	Skipped map[string]int

	// IncludesInverses is set when the records were dumped after adoption
	// and already carry child-role edges.
	IncludesInverses bool
}

// SyntaxError reports malformed input with its position.
type SyntaxError struct {
	File string
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// Unwrap lets errors.Is match ErrSyntax.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

func syntaxErrorf(file string, line int, format string, args ...any) error {
	return &SyntaxError{File: file, Line: line, Msg: fmt.Sprintf(format, args...)}
}
