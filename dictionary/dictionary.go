package dictionary

import (
	"errors"
	"fmt"
	"strings"

	"datadict/provenance"
	"datadict/schema"
)

// maxDescription caps the dictionary summary the same way the schema
// package caps a question's description.
const maxDescription = 80

var (
	// ErrDescription reports a dictionary description over the cap.
	ErrDescription = errors.New("invalid dictionary description")
	// ErrDuplicate reports an Add for a name that already has an entry.
	ErrDuplicate = errors.New("duplicate dictionary entry")
	// ErrNotFound reports a name with no dictionary entry.
	ErrNotFound = errors.New("no dictionary entry")
)

// Dictionary is the insertion-ordered collection of question schemas
// describing one dataset, one entry per column. Every container
// operation lands in the dictionary's own provenance trail.
type Dictionary struct {
	description string
	questions   []*schema.Question
	index       map[string]int
	log         *provenance.Log
}

// New builds an empty dictionary. The description is optional but at
// most 80 characters.
func New(description string) (*Dictionary, error) {
	if len(description) > maxDescription {
		return nil, fmt.Errorf("%w: cannot be more than %d characters",
			ErrDescription, maxDescription)
	}
	return &Dictionary{
		description: description,
		index:       make(map[string]int),
		log:         provenance.NewLog(),
	}, nil
}

// Description returns the dictionary-level summary text.
func (d *Dictionary) Description() string { return d.description }

// Provenance exposes the container's append-only trail.
func (d *Dictionary) Provenance() *provenance.Log { return d.log }

// Len returns the number of entries.
func (d *Dictionary) Len() int { return len(d.questions) }

// Names returns the entry names in insertion order.
func (d *Dictionary) Names() []string {
	out := make([]string, len(d.questions))
	for i, q := range d.questions {
		out[i] = q.Name
	}
	return out
}

// Questions returns the entries in insertion order.
func (d *Dictionary) Questions() []*schema.Question {
	return append([]*schema.Question(nil), d.questions...)
}

// Options tunes how Add treats the incoming schema.
type Options struct {
	// Overwrite replaces an existing entry in place instead of failing
	// on the duplicate name.
	Overwrite bool

	// Silent skips the provenance entry. Document loading uses this so
	// a freshly parsed dictionary does not read as a series of
	// additions.
	Silent bool
}

// Add registers q under its name, keeping insertion order. A name that
// already has an entry fails unless opts.Overwrite is set, in which
// case the new schema takes the old position.
func (d *Dictionary) Add(q *schema.Question, opts Options) error {
	i, exists := d.index[q.Name]
	if exists && !opts.Overwrite {
		if !opts.Silent {
			d.log.Append(q.Name, "add column", provenance.CategoryError,
				fmt.Sprintf("%s already has a dictionary entry", q.Name))
		}
		return fmt.Errorf("%w: %s", ErrDuplicate, q.Name)
	}

	if exists {
		d.questions[i] = q
	} else {
		d.index[q.Name] = len(d.questions)
		d.questions = append(d.questions, q)
	}
	if !opts.Silent {
		d.log.Append(q.Name, "add column", provenance.CategoryRecord,
			fmt.Sprintf("%s was added to the dictionary", q.Name))
	}
	return nil
}

// Get looks the entry up by name. Both the hit and the miss are
// recorded in the trail.
func (d *Dictionary) Get(name string) (*schema.Question, error) {
	i, ok := d.index[name]
	if !ok {
		d.log.Append(name, "get question", provenance.CategoryError,
			fmt.Sprintf("There is no entry for %s", name))
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	d.log.Append(name, "get question", provenance.CategoryRecord, "")
	return d.questions[i], nil
}

// Drop removes the entry for name. An absent name is not an error, the
// request is still recorded.
func (d *Dictionary) Drop(name string) {
	if i, ok := d.index[name]; ok {
		d.questions = append(d.questions[:i], d.questions[i+1:]...)
		delete(d.index, name)
		for n, j := range d.index {
			if j > i {
				d.index[n] = j - 1
			}
		}
	}
	d.log.Append(name, "remove question", provenance.CategoryDrop, "")
}

// Update replaces the entry for name with a schema built from p,
// recording the attribute diff. The new schema may rename the entry,
// the position is kept either way.
func (d *Dictionary) Update(name string, p schema.Params) error {
	i, ok := d.index[name]
	if !ok {
		d.log.Append(name, "update question", provenance.CategoryError,
			fmt.Sprintf("%s is not a question in the current dictionary.\n"+
				"Have you tried adding the question?", name))
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	updated, err := schema.New(p)
	if err != nil {
		d.log.Append(name, "update question", provenance.CategoryError, err.Error())
		return err
	}
	if updated.Name != name {
		if _, taken := d.index[updated.Name]; taken {
			d.log.Append(name, "update question", provenance.CategoryError,
				fmt.Sprintf("%s already has a dictionary entry", updated.Name))
			return fmt.Errorf("%w: %s", ErrDuplicate, updated.Name)
		}
		delete(d.index, name)
		d.index[updated.Name] = i
	}

	detail := strings.Join(schema.Diff(d.questions[i], updated), " | ")
	d.questions[i] = updated
	d.log.Append(updated.Name, "update question", provenance.CategoryUpdate, detail)
	return nil
}

var divider = strings.Repeat("-", 80)

// String summarizes the dictionary as a header plus one "name (type)"
// line per entry.
func (d *Dictionary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Data Dictionary with %d columns\n", d.Len())
	if d.description != "" {
		fmt.Fprintf(&b, "\t%s\n", d.description)
	}
	b.WriteString(divider + "\n")
	for _, q := range d.questions {
		fmt.Fprintf(&b, "%s (%s)\n", q.Name, q.Response.Code())
	}
	b.WriteString(divider)
	return b.String()
}
