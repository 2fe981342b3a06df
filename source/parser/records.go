package parser

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semonto/ontology"
	"github.com/c360studio/semonto/vocabulary/relation"
)

// RecordParser parses term records written in YAML or JSON.
//
// Two layouts are accepted. The list layout:
//
//	header:
//	  format-version: "1.2"
//	imports: [uo.yaml]
//	terms:
//	  - id: MS:1000001
//	    name: sample number
//	    description: A reference number relevant to the sample under study.
//	    relations:
//	      is_a: [MS:1000548]
//	    other:
//	      synonym: [sample id]
//
// and the keyed layout written by Ontology.JSON, an object of terms keyed by
// identifier. Declaration order is kept in both. A keyed document already
// holds adopted inverse edges and is flagged with IncludesInverses.
//
// Relation targets are references, except quoted strings ("\"um\"") and
// non-string scalars, which are literals.
type RecordParser struct{}

// NewRecordParser creates a new record parser.
func NewRecordParser() *RecordParser {
	return &RecordParser{}
}

// MimeType returns the primary MIME type for this parser.
func (p *RecordParser) MimeType() string {
	return MimeYAML
}

// CanParse returns true if this parser can handle the given MIME type.
func (p *RecordParser) CanParse(mimeType string) bool {
	switch mimeType {
	case MimeYAML, "application/x-yaml", "text/yaml", "text/x-yaml", "application/json", "text/json":
		return true
	default:
		return false
	}
}

// Parse parses a YAML or JSON record document.
func (p *RecordParser) Parse(filename string, content []byte) (*Document, error) {
	doc := &Document{Skipped: make(map[string]int)}

	var root yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(content))
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return doc, nil
		}
		return nil, yamlSyntaxError(filename, err)
	}
	if len(root.Content) == 0 {
		return doc, nil
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, syntaxErrorf(filename, top.Line, "document must be a mapping, got %s", kindName(top))
	}

	rp := &recordParse{file: filename, doc: doc}
	if isListLayout(top) {
		if err := rp.listLayout(top); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err := rp.keyedLayout(top); err != nil {
		return nil, err
	}
	doc.IncludesInverses = true
	return doc, nil
}

type recordParse struct {
	file string
	doc  *Document
}

// isListLayout reports whether the top-level mapping uses the reserved
// header, imports and terms keys.
func isListLayout(top *yaml.Node) bool {
	return lookup(top, "terms") != nil || lookup(top, "header") != nil || lookup(top, "imports") != nil
}

func (rp *recordParse) listLayout(top *yaml.Node) error {
	if h := lookup(top, "header"); h != nil {
		meta, err := rp.metadata(h)
		if err != nil {
			return err
		}
		rp.doc.Header = meta
	}

	if imps := lookup(top, "imports"); imps != nil {
		values, err := rp.stringList(imps)
		if err != nil {
			return err
		}
		rp.doc.Imports = values
	}

	terms := lookup(top, "terms")
	if terms == nil || terms.ShortTag() == "!!null" {
		return nil
	}
	if terms.Kind != yaml.SequenceNode {
		return syntaxErrorf(rp.file, terms.Line, "terms must be a list, got %s", kindName(terms))
	}
	for _, n := range terms.Content {
		rec, err := rp.record(n, "")
		if err != nil {
			return err
		}
		rp.doc.Records = append(rp.doc.Records, rec)
	}
	return nil
}

func (rp *recordParse) keyedLayout(top *yaml.Node) error {
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, val := top.Content[i], top.Content[i+1]
		rec, err := rp.record(val, key.Value)
		if err != nil {
			return err
		}
		rp.doc.Records = append(rp.doc.Records, rec)
	}
	return nil
}

// record decodes one term mapping. fallbackID is used when the mapping has
// no id field.
func (rp *recordParse) record(n *yaml.Node, fallbackID string) (ontology.Record, error) {
	if n.Kind != yaml.MappingNode {
		return ontology.Record{}, syntaxErrorf(rp.file, n.Line, "term must be a mapping, got %s", kindName(n))
	}

	rec := ontology.Record{ID: fallbackID}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case "id":
			rec.ID = val.Value
		case "name":
			rec.Name = val.Value
		case "description", "desc", "def":
			rec.Description = val.Value
		case "relations":
			rels, err := rp.relations(val)
			if err != nil {
				return rec, err
			}
			rec.Relations = rels
		case "other":
			meta, err := rp.metadata(val)
			if err != nil {
				return rec, err
			}
			rec.Other = meta
		default:
			return rec, syntaxErrorf(rp.file, key.Line, "unknown term field %q", key.Value)
		}
	}

	if rec.ID == "" {
		return rec, syntaxErrorf(rp.file, n.Line, "term without id")
	}
	return rec, nil
}

func (rp *recordParse) relations(n *yaml.Node) (ontology.Relations, error) {
	var rels ontology.Relations
	if n.Kind != yaml.MappingNode {
		return rels, syntaxErrorf(rp.file, n.Line, "relations must be a mapping, got %s", kindName(n))
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		kind := relation.Kind(n.Content[i].Value)
		val := n.Content[i+1]

		targets := []*yaml.Node{val}
		if val.Kind == yaml.SequenceNode {
			targets = val.Content
		}

		eps := make([]ontology.Endpoint, 0, len(targets))
		for _, t := range targets {
			if t.Kind != yaml.ScalarNode {
				return rels, syntaxErrorf(rp.file, t.Line, "relation %s target must be a scalar", kind)
			}
			eps = append(eps, endpoint(t))
		}
		rels.Add(kind, eps...)
	}
	return rels, nil
}

func endpoint(n *yaml.Node) ontology.Endpoint {
	if n.ShortTag() != "!!str" || strings.HasPrefix(n.Value, `"`) {
		return ontology.Literal(n.Value)
	}
	return ontology.Ref(n.Value)
}

func (rp *recordParse) metadata(n *yaml.Node) (ontology.Metadata, error) {
	var meta ontology.Metadata
	if n.Kind != yaml.MappingNode {
		return meta, syntaxErrorf(rp.file, n.Line, "metadata must be a mapping, got %s", kindName(n))
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, n.Content[i+1]
		switch val.Kind {
		case yaml.ScalarNode:
			meta.Set(key, val.Value)
		case yaml.SequenceNode:
			values, err := rp.stringList(val)
			if err != nil {
				return meta, err
			}
			meta.SetValues(key, values)
		default:
			return meta, syntaxErrorf(rp.file, val.Line, "metadata %q must be a scalar or a list", key)
		}
	}
	return meta, nil
}

func (rp *recordParse) stringList(n *yaml.Node) ([]string, error) {
	if n.Kind == yaml.ScalarNode {
		return []string{n.Value}, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, syntaxErrorf(rp.file, n.Line, "expected a list, got %s", kindName(n))
	}
	out := make([]string, 0, len(n.Content))
	for _, c := range n.Content {
		if c.Kind != yaml.ScalarNode {
			return nil, syntaxErrorf(rp.file, c.Line, "expected a scalar, got %s", kindName(c))
		}
		out = append(out, c.Value)
	}
	return out, nil
}

// lookup returns the value node for key in a mapping node.
func lookup(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "list"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}

// yamlSyntaxError converts a decoder error to a *SyntaxError. yaml.v3
// reports positions as "yaml: line N: msg".
func yamlSyntaxError(file string, err error) error {
	msg := err.Error()
	line := 0
	if rest, ok := strings.CutPrefix(msg, "yaml: line "); ok {
		if num, tail, ok := strings.Cut(rest, ":"); ok {
			for _, r := range num {
				if r < '0' || r > '9' {
					line = 0
					break
				}
				line = line*10 + int(r-'0')
			}
			msg = strings.TrimSpace(tail)
		}
	}
	return &SyntaxError{File: file, Line: line, Msg: msg}
}
