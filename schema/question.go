package schema

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"datadict/internal/common"
	"datadict/primitive"
	"datadict/provenance"
)

// maxDescription caps description lengths so records stay scannable.
const maxDescription = 80

var (
	// ErrInvalidSchema reports a Params set that cannot produce a schema.
	ErrInvalidSchema = errors.New("invalid column schema")
	// ErrCoercion reports cells the declared kind cannot represent.
	ErrCoercion = errors.New("cast failed")
	// ErrDomain reports substantive cells outside the admissible values or limits.
	ErrDomain = errors.New("value check failed")
	// ErrState reports an operation whose required schema state is absent.
	ErrState = errors.New("missing schema state")
)

// Placeholders groups the non-substantive vocabularies of one column.
// Members bypass casting and never count against admissible values.
type Placeholders struct {
	// Missing marks values recorded when no answer exists.
	Missing *primitive.Set
	// Blanks marks deliberately empty responses.
	Blanks *primitive.Set
	// Ambiguous marks responses that cannot be interpreted.
	Ambiguous *primitive.Set
}

// All returns the union of the three vocabularies.
func (p Placeholders) All() *primitive.Set {
	return p.Missing.Union(p.Blanks, p.Ambiguous)
}

func (p Placeholders) Contains(v primitive.Value) bool {
	return p.Missing.Contains(v) || p.Blanks.Contains(v) || p.Ambiguous.Contains(v)
}

// BoolFormat names the tokens a boolean question prints and admits.
type BoolFormat struct {
	True  string
	False string
}

func DefaultBoolFormat() BoolFormat {
	return BoolFormat{True: "true", False: "false"}
}

func (f BoolFormat) isZero() bool {
	return f.True == "" && f.False == ""
}

// Coding ties a numeric code to its label, e.g. 0=female.
type Coding struct {
	Code  primitive.Value
	Label string
}

// Params is the declarative description a Question is built from. Zero
// fields fall back to response-type defaults during construction.
type Params struct {
	// Name is the column header this schema describes.
	Name string

	// Description is a short human-readable summary, at most 80 characters.
	Description string

	// Response picks the constraint style, default ResponseFree.
	Response Response

	// Kind is the declared cell type, default per response type.
	Kind primitive.Kind

	// Order lists the admissible values for categorical and boolean
	// questions, in their meaningful order.
	Order []primitive.Value

	// Extremes overrides the endpoints, default first and last of Order.
	Extremes []primitive.Value

	// RefValue overrides the baseline category, default first of Order.
	RefValue primitive.Value

	// Lower and Upper are the inclusive limits of a continuous question.
	// Null means unbounded on that side.
	Lower primitive.Value
	Upper primitive.Value

	// Units names the measurement unit quoted in bound messages.
	Units string

	// SigFigs is the significant-figure hint for display, 0 when unset.
	SigFigs int

	// FrequencyCutoff is the count at or below which DropInfrequent
	// discards an admissible value. Null means unset.
	FrequencyCutoff primitive.Value

	// Missing, Blanks and Ambiguous seed the placeholder vocabularies.
	// A nil Missing slice adopts primitive.StandardMissing; an empty
	// non-nil slice really means none.
	Missing   []primitive.Value
	Blanks    []primitive.Value
	Ambiguous []primitive.Value

	// Format names the boolean tokens, default true/false.
	Format BoolFormat

	// Vocab widens or narrows the raw values accepted as booleans.
	Vocab primitive.BoolVocab

	// Codes is the numeric-code table used by label conversions.
	Codes []Coding

	FreeResponse bool
	Notes        string

	// CleanName overrides the derived display name.
	CleanName string

	SourceColumns     []string
	DerivativeColumns []string
	OriginalName      string

	// Extra carries forward attributes this schema does not model.
	Extra map[string]string
}

// Question is one column's metadata record: what the cells are, which
// values count, and every operation applied along the way.
type Question struct {
	Name        string
	CleanName   string
	Description string
	Response    Response
	Kind        primitive.Kind

	Order    []primitive.Value
	Extremes []primitive.Value
	RefValue primitive.Value

	Lower primitive.Value
	Upper primitive.Value

	Units           string
	SigFigs         int
	FrequencyCutoff primitive.Value

	Placeholders Placeholders
	Format       BoolFormat
	Vocab        primitive.BoolVocab
	Codes        []Coding

	FreeResponse      bool
	Notes             string
	SourceColumns     []string
	DerivativeColumns []string
	OriginalName      string
	Extra             map[string]string

	log *provenance.Log
}

// New builds a Question from p, applying defaults and checking the
// construction invariants.
func New(p Params) (*Question, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidSchema)
	}
	if strings.TrimSpace(p.Description) == "" {
		return nil, fmt.Errorf("%w: %s needs a description", ErrInvalidSchema, name)
	}
	if len(p.Description) > maxDescription {
		return nil, fmt.Errorf("%w: %s description exceeds %d characters",
			ErrInvalidSchema, name, maxDescription)
	}

	response := p.Response
	if response == 0 {
		response = ResponseFree
	}

	kind, err := defaultKind(name, response, p.Kind)
	if err != nil {
		return nil, err
	}

	placeholders := Placeholders{
		Missing:   missingSet(p.Missing),
		Blanks:    primitive.NewSet(p.Blanks...),
		Ambiguous: primitive.NewSet(p.Ambiguous...),
	}

	format := p.Format
	order := p.Order
	if response == ResponseBool {
		if format.isZero() {
			format = boolFormatFrom(order, vocabOrDefault(p.Vocab))
		}
		if len(order) == 0 {
			order = []primitive.Value{
				primitive.Text(format.True),
				primitive.Text(format.False),
			}
		}
	}
	if response == ResponseCategorical && len(order) == 0 {
		return nil, fmt.Errorf("%w: %s needs admissible values", ErrInvalidSchema, name)
	}

	// ambiguous markers never count as admissible
	order = dropMembers(order, placeholders.Ambiguous)

	if err := checkLimitOrder(name, p.Lower, p.Upper); err != nil {
		return nil, err
	}
	if !p.FrequencyCutoff.IsNull() && !p.FrequencyCutoff.IsNumeric() {
		return nil, fmt.Errorf("%w: %s frequency cutoff must be numeric", ErrInvalidSchema, name)
	}
	if p.SigFigs < 0 {
		return nil, fmt.Errorf("%w: %s significant figures cannot be negative", ErrInvalidSchema, name)
	}

	q := &Question{
		Name:        name,
		CleanName:   p.CleanName,
		Description: p.Description,
		Response:    response,
		Kind:        kind,

		Order:    order,
		Extremes: p.Extremes,
		RefValue: p.RefValue,

		Lower: p.Lower,
		Upper: p.Upper,

		Units:           p.Units,
		SigFigs:         p.SigFigs,
		FrequencyCutoff: p.FrequencyCutoff,

		Placeholders: placeholders,
		Format:       format,
		Vocab:        p.Vocab,
		Codes:        append([]Coding(nil), p.Codes...),

		FreeResponse:      p.FreeResponse,
		Notes:             p.Notes,
		SourceColumns:     append([]string(nil), p.SourceColumns...),
		DerivativeColumns: append([]string(nil), p.DerivativeColumns...),
		OriginalName:      p.OriginalName,
		Extra:             copyExtra(p.Extra),

		log: provenance.NewLog(),
	}

	if q.CleanName == "" {
		q.CleanName = cleanName(name)
	}
	if len(q.Extremes) == 0 {
		q.Extremes = defaultExtremes(q.Order)
	}
	if q.RefValue.IsNull() {
		if first, ok := common.First(q.Order); ok {
			q.RefValue = first
		}
	}

	return q, nil
}

// String summarizes the schema as "name (type)" with its description on
// the next line.
func (q *Question) String() string {
	return fmt.Sprintf("%s (%s)\n\t%s", q.Name, q.Response.Code(), q.Description)
}

// Provenance exposes the append-only trail of this question.
func (q *Question) Provenance() *provenance.Log { return q.log }

// WriteProvenance renders the trail as flat records for export, noting
// the export itself first.
func (q *Question) WriteProvenance() []map[string]string {
	q.log.Append(q.Name, "Write Log", provenance.CategoryRecord, "")
	return q.log.Records()
}

// Caster builds the cell coercer for this question's kind, placeholder
// vocabularies and boolean vocabulary.
func (q *Question) Caster() *primitive.Caster {
	return primitive.NewCaster(q.Kind, q.Placeholders.All(), q.Vocab)
}

func defaultKind(name string, response Response, kind primitive.Kind) (primitive.Kind, error) {
	switch response {
	default:
		if kind == 0 {
			return primitive.KindText, nil
		}
	case ResponseBool:
		if kind != 0 && kind != primitive.KindBool {
			return 0, fmt.Errorf("%w: %s boolean questions use the bool kind", ErrInvalidSchema, name)
		}
		return primitive.KindBool, nil
	case ResponseContinuous:
		if kind == 0 {
			return primitive.KindFloat, nil
		}
		if !kind.IsNumeric() {
			return 0, fmt.Errorf("%w: %s continuous questions need a numeric kind, got %s",
				ErrInvalidSchema, name, kind.Code())
		}
	}
	if !kind.IsValid() {
		return 0, fmt.Errorf("%w: %s has no usable kind", ErrInvalidSchema, name)
	}
	return kind, nil
}

func checkLimitOrder(name string, lower, upper primitive.Value) error {
	for _, v := range []primitive.Value{lower, upper} {
		if !v.IsNull() && !v.IsNumeric() {
			return fmt.Errorf("%w: %s limits must be numeric", ErrInvalidSchema, name)
		}
	}
	if lower.IsNull() || upper.IsNull() {
		return nil
	}
	if cmp, ok := lower.Compare(upper); ok && cmp > 0 {
		return fmt.Errorf("%w: %s lower limit exceeds the upper limit", ErrInvalidSchema, name)
	}
	return nil
}

func missingSet(missing []primitive.Value) *primitive.Set {
	if missing == nil {
		return primitive.StandardMissing()
	}
	return primitive.NewSet(missing...)
}

// boolFormatFrom recovers the print tokens from an admissible-value
// pair. Tokens the vocabulary recognizes land on their own side, so both
// ["yes","no"] and ["no","yes"] produce the same format. Unrecognized
// tokens fall back to trueish-first position.
func boolFormatFrom(order []primitive.Value, vocab primitive.BoolVocab) BoolFormat {
	if len(order) < 2 {
		return DefaultBoolFormat()
	}
	format := BoolFormat{True: order[0].String(), False: order[1].String()}
	for _, v := range order[:2] {
		truth, ok := vocab.Classify(v)
		if !ok {
			continue
		}
		if truth {
			format.True = v.String()
		} else {
			format.False = v.String()
		}
	}
	return format
}

func vocabOrDefault(vocab primitive.BoolVocab) primitive.BoolVocab {
	if vocab.True.Len() == 0 && vocab.False.Len() == 0 {
		return primitive.DefaultBoolVocab()
	}
	return vocab
}

func dropMembers(values []primitive.Value, drop *primitive.Set) []primitive.Value {
	if drop.Len() == 0 {
		return values
	}
	out := make([]primitive.Value, 0, len(values))
	for _, v := range values {
		if !drop.Contains(v) {
			out = append(out, v)
		}
	}
	return out
}

func defaultExtremes(order []primitive.Value) []primitive.Value {
	first, ok := common.First(order)
	if !ok {
		return nil
	}
	last, _ := common.Last(order)
	if first.Equal(last) {
		return []primitive.Value{first}
	}
	return []primitive.Value{first, last}
}

func copyExtra(extra map[string]string) map[string]string {
	if len(extra) == 0 {
		return nil
	}
	out := make(map[string]string, len(extra))
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// cleanName derives the display name: underscores become spaces and every
// word is title-cased, so "years_on_team" reads "Years On Team".
func cleanName(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
