package parser

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/c360studio/semonto/ontology"
	"github.com/c360studio/semonto/vocabulary/relation"
)

// maxLineSize bounds a single OBO line. Some ontologies carry very long
// definitions.
const maxLineSize = 4 << 20

// OBOParser parses OBO flat-file documents.
//
// Header tags before the first stanza become Document.Header, except
// "import" which goes to Document.Imports. [Term] stanzas become records;
// other stanza types are counted in Document.Skipped. Within a term:
//
//	id:            the identifier (required, once)
//	name:          the name
//	def:           the description, kept verbatim
//	is_a:          an is_a reference
//	relationship:  "kind target" or "kind: target"
//
// Every other tag is kept as metadata. Unquoted "! comments" are stripped.
// A relationship target written in double quotes is a literal.
type OBOParser struct{}

// NewOBOParser creates a new OBO parser.
func NewOBOParser() *OBOParser {
	return &OBOParser{}
}

// MimeType returns the primary MIME type for this parser.
func (p *OBOParser) MimeType() string {
	return MimeOBO
}

// CanParse returns true if this parser can handle the given MIME type.
func (p *OBOParser) CanParse(mimeType string) bool {
	switch mimeType {
	case MimeOBO, "application/x-obo", "text/x-obo":
		return true
	default:
		return false
	}
}

type oboState struct {
	file    string
	doc     *Document
	term    *ontology.Record
	termAt  int
	stanza  string
	hasName bool
}

// Parse parses an OBO document.
func (p *OBOParser) Parse(filename string, content []byte) (*Document, error) {
	st := &oboState{file: filename, doc: &Document{Skipped: make(map[string]int)}}

	sc := bufio.NewScanner(bytes.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, syntaxErrorf(filename, lineNo, "unterminated stanza header %q", line)
			}
			if err := st.flush(); err != nil {
				return nil, err
			}
			st.open(strings.TrimSpace(line[1:len(line)-1]), lineNo)
			continue
		}

		tag, value, ok := splitTag(line)
		if !ok {
			return nil, syntaxErrorf(filename, lineNo, "expected \"tag: value\", got %q", line)
		}
		if err := st.tag(tag, value, lineNo); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, syntaxErrorf(filename, lineNo+1, "%v", err)
	}

	if err := st.flush(); err != nil {
		return nil, err
	}
	return st.doc, nil
}

func (st *oboState) open(stanza string, line int) {
	st.stanza = stanza
	if stanza != "Term" {
		st.doc.Skipped[stanza]++
		return
	}
	st.term = &ontology.Record{}
	st.termAt = line
	st.hasName = false
}

func (st *oboState) flush() error {
	if st.term == nil {
		return nil
	}
	if st.term.ID == "" {
		return syntaxErrorf(st.file, st.termAt, "[Term] stanza without id")
	}
	st.doc.Records = append(st.doc.Records, *st.term)
	st.term = nil
	return nil
}

func (st *oboState) tag(tag, value string, line int) error {
	switch {
	case st.stanza == "":
		return st.header(tag, value)
	case st.term == nil:
		return nil
	}

	value = stripComment(value)
	rec := st.term

	switch tag {
	case "id":
		if rec.ID != "" {
			return syntaxErrorf(st.file, line, "duplicate id in term %s", rec.ID)
		}
		if value == "" {
			return syntaxErrorf(st.file, line, "empty id")
		}
		rec.ID = value
	case "name":
		if st.hasName {
			return syntaxErrorf(st.file, line, "duplicate name in term %s", rec.ID)
		}
		st.hasName = true
		rec.Name = value
	case "def":
		rec.Description = value
	case "is_a":
		target := firstField(value)
		if target == "" {
			return syntaxErrorf(st.file, line, "is_a without target")
		}
		rec.Relations.Add(relation.IsA, ontology.Ref(target))
	case "relationship":
		kind, target, ok := splitRelationship(value)
		if !ok {
			return syntaxErrorf(st.file, line, "malformed relationship %q", value)
		}
		rec.Relations.Add(kind, target)
	default:
		rec.Other.Add(tag, value)
	}
	return nil
}

func (st *oboState) header(tag, value string) error {
	value = stripComment(value)
	if tag == "import" {
		st.doc.Imports = append(st.doc.Imports, value)
		return nil
	}
	st.doc.Header.Add(tag, value)
	return nil
}

// splitTag splits "tag: value". The value may be empty.
func splitTag(line string) (string, string, bool) {
	tag, value, ok := strings.Cut(line, ":")
	tag = strings.TrimSpace(tag)
	if !ok || tag == "" || strings.ContainsAny(tag, " \t") {
		return "", "", false
	}
	return tag, strings.TrimSpace(value), true
}

// splitRelationship parses "kind target" and "kind: target". A quoted target
// is a literal.
func splitRelationship(value string) (relation.Kind, ontology.Endpoint, bool) {
	kind, rest, ok := strings.Cut(value, " ")
	if !ok {
		return "", ontology.Endpoint{}, false
	}
	kind = strings.TrimSuffix(kind, ":")
	rest = strings.TrimSpace(rest)
	if kind == "" || rest == "" {
		return "", ontology.Endpoint{}, false
	}
	if strings.HasPrefix(rest, `"`) {
		return relation.Kind(kind), ontology.Literal(rest), true
	}
	return relation.Kind(kind), ontology.Ref(firstField(rest)), true
}

func firstField(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// stripComment removes a trailing "! comment", ignoring "!" inside double
// quotes or escaped with a backslash.
func stripComment(value string) string {
	inQuote := false
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '\\':
			i++
		case '"':
			inQuote = !inQuote
		case '!':
			if !inQuote && (i == 0 || value[i-1] == ' ' || value[i-1] == '\t') {
				return strings.TrimSpace(value[:i])
			}
		}
	}
	return strings.TrimSpace(value)
}
