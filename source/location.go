package source

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Scheme classifies where an ontology is read from.
type Scheme string

// Supported schemes.
const (
	SchemeFile  Scheme = "file"
	SchemeHTTP  Scheme = "http"
	SchemeHTTPS Scheme = "https"
	SchemeFTP   Scheme = "ftp"
)

// Location is a parsed ontology location: a URL for remote sources, a
// filesystem path for local ones.
type Location struct {
	// Raw is the location as given.
	Raw string

	// Scheme is the retrieval scheme. Plain paths use SchemeFile.
	Scheme Scheme

	// URL is set for remote locations.
	URL *url.URL

	// Path is the filesystem path for local locations, and the URL path for
	// remote ones.
	Path string
}

// ParseLocation classifies raw as a remote URL or a local path.
// "file://" URLs are treated as local paths.
func ParseLocation(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{}, fmt.Errorf("%w: empty location", ErrUnsupportedScheme)
	}

	if !hasScheme(raw) {
		return Location{Raw: raw, Scheme: SchemeFile, Path: filepath.Clean(raw)}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("invalid location %q: %w", raw, err)
	}

	switch Scheme(strings.ToLower(u.Scheme)) {
	case SchemeFile:
		return Location{Raw: raw, Scheme: SchemeFile, Path: filepath.FromSlash(u.Path)}, nil
	case SchemeHTTP, SchemeHTTPS, SchemeFTP:
		if u.Host == "" {
			return Location{}, fmt.Errorf("invalid location %q: missing host", raw)
		}
		return Location{Raw: raw, Scheme: Scheme(strings.ToLower(u.Scheme)), URL: u, Path: u.Path}, nil
	default:
		return Location{}, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

// hasScheme reports whether raw starts with "scheme://". Windows drive
// letters ("C:\...") are not schemes.
func hasScheme(raw string) bool {
	i := strings.Index(raw, "://")
	if i <= 1 {
		return false
	}
	for _, r := range raw[:i] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.') {
			return false
		}
	}
	return true
}

// IsRemote reports whether the location needs a network transfer.
func (l Location) IsRemote() bool {
	return l.Scheme != SchemeFile
}

// Base returns the last element of the location path.
func (l Location) Base() string {
	if l.IsRemote() {
		return path.Base(l.Path)
	}
	return filepath.Base(l.Path)
}

// Resolve interprets ref relative to l. Absolute URLs and absolute paths are
// returned as is; relative references are joined to the directory of l.
func (l Location) Resolve(ref string) (Location, error) {
	if hasScheme(ref) {
		return ParseLocation(ref)
	}

	if l.IsRemote() {
		rel, err := url.Parse(ref)
		if err != nil {
			return Location{}, fmt.Errorf("invalid reference %q: %w", ref, err)
		}
		return ParseLocation(l.URL.ResolveReference(rel).String())
	}

	if filepath.IsAbs(ref) {
		return ParseLocation(ref)
	}
	return ParseLocation(filepath.Join(filepath.Dir(l.Path), ref))
}

// String returns the canonical form: the URL for remote locations, the
// path otherwise.
func (l Location) String() string {
	if l.IsRemote() {
		return l.URL.String()
	}
	return l.Path
}
