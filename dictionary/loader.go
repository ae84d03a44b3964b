package dictionary

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"datadict/schema"
)

// ErrDocument reports YAML that does not describe a dictionary.
var ErrDocument = errors.New("malformed dictionary document")

// document is the YAML shape of a serialized dictionary.
type document struct {
	Version     string          `yaml:"version,omitempty"`
	Description string          `yaml:"description,omitempty"`
	Questions   []schema.Record `yaml:"questions"`
}

// Parse reads a YAML dictionary document. Question records keep their
// field order, duplicate names fail the load. Parsing leaves the trail
// empty, the document describes state rather than operations.
func Parse(data []byte) (*Dictionary, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocument, err)
	}
	applyDefaults(&doc)

	d, err := New(doc.Description)
	if err != nil {
		return nil, err
	}
	for i, r := range doc.Questions {
		q, err := schema.FromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("questions[%d]: %w", i, err)
		}
		if err := d.Add(q, Options{Silent: true}); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// applyDefaults fills in the optional document fields.
func applyDefaults(doc *document) {
	if doc.Version == "" {
		doc.Version = "1"
	}
	doc.Description = strings.TrimSpace(doc.Description)
}

// Marshal serializes the dictionary to its document form. Records hold
// only deliberately set attributes, so a parsed document survives the
// round trip unchanged.
func Marshal(d *Dictionary) ([]byte, error) {
	doc := document{
		Version:     "1",
		Description: d.description,
		Questions:   make([]schema.Record, d.Len()),
	}
	for i, q := range d.questions {
		doc.Questions[i] = q.Record()
	}
	return yaml.Marshal(doc)
}
