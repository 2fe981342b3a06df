package parser

import (
	"bytes"
	"fmt"
	"mime"
	"path"
	"strings"
	"sync"
)

// Parser defines the interface for ontology document parsers.
type Parser interface {
	// Parse parses a document into header, imports and term records.
	Parse(filename string, content []byte) (*Document, error)

	// CanParse returns true if this parser handles the given MIME type.
	CanParse(mimeType string) bool

	// MimeType returns the primary MIME type for this parser.
	MimeType() string
}

// Registry manages ontology parsers.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]Parser // keyed by primary MIME type
}

// DefaultRegistry is the global parser registry with default parsers.
var DefaultRegistry = NewRegistry()

// NewRegistry creates a new parser registry with the OBO and record parsers.
func NewRegistry() *Registry {
	r := &Registry{
		parsers: make(map[string]Parser),
	}

	r.Register(NewOBOParser())
	r.Register(NewRecordParser())

	return r
}

// Register adds a parser to the registry.
func (r *Registry) Register(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[p.MimeType()] = p
}

// GetByMimeType returns a parser for the given MIME type. Parameters such as
// "; charset=utf-8" are ignored.
func (r *Registry) GetByMimeType(mimeType string) Parser {
	if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = mt
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.parsers[mimeType]; ok {
		return p
	}

	for _, p := range r.parsers {
		if p.CanParse(mimeType) {
			return p
		}
	}

	return nil
}

// GetByExtension returns a parser for a file based on its extension.
// URL paths work as well as filesystem paths.
func (r *Registry) GetByExtension(filename string) Parser {
	return r.GetByMimeType(MimeTypeFromExtension(path.Ext(strings.ReplaceAll(filename, "\\", "/"))))
}

// Detect picks a parser from the file extension, then the declared content
// type, then the content itself. It returns nil if nothing matches.
func (r *Registry) Detect(filename, contentType string, content []byte) Parser {
	if p := r.GetByExtension(filename); p != nil {
		return p
	}
	if contentType != "" {
		if p := r.GetByMimeType(contentType); p != nil {
			return p
		}
	}
	if mt := sniff(content); mt != "" {
		return r.GetByMimeType(mt)
	}
	return nil
}

// Parse parses a document, choosing the parser from its extension.
func (r *Registry) Parse(filename string, content []byte) (*Document, error) {
	return r.ParseContent(filename, "", content)
}

// ParseContent parses a document, choosing the parser with Detect.
func (r *Registry) ParseContent(filename, contentType string, content []byte) (*Document, error) {
	p := r.Detect(filename, contentType, content)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
	return p.Parse(filename, content)
}

// ListMimeTypes returns all registered MIME types.
func (r *Registry) ListMimeTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.parsers))
	for t := range r.parsers {
		types = append(types, t)
	}
	return types
}

// MimeTypeFromExtension returns the MIME type for a file extension.
func MimeTypeFromExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".obo":
		return MimeOBO
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return MimeYAML
	case ".owl", ".rdf":
		return "application/rdf+xml"
	default:
		return "application/octet-stream"
	}
}

// ExtensionFromMimeType returns a typical file extension for a MIME type.
func ExtensionFromMimeType(mimeType string) string {
	switch mimeType {
	case MimeOBO, "application/x-obo":
		return ".obo"
	case "application/json":
		return ".json"
	case MimeYAML, "application/x-yaml", "text/yaml":
		return ".yaml"
	default:
		return ""
	}
}

// sniff guesses a MIME type from the first bytes of content.
func sniff(content []byte) string {
	head := bytes.TrimSpace(content)
	if len(head) > 4096 {
		head = head[:4096]
	}
	switch {
	case bytes.HasPrefix(head, []byte("{")):
		return "application/json"
	case bytes.HasPrefix(head, []byte("format-version:")),
		bytes.HasPrefix(head, []byte("[Term]")),
		bytes.Contains(head, []byte("\n[Term]")):
		return MimeOBO
	case bytes.HasPrefix(head, []byte("terms:")),
		bytes.Contains(head, []byte("\nterms:")):
		return MimeYAML
	default:
		return ""
	}
}
