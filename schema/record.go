package schema

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"datadict/internal/codec"
	"datadict/primitive"
)

// ErrRecord reports a flat record the decoder cannot interpret.
var ErrRecord = errors.New("malformed record")

// Field is one attribute of a flat record.
type Field struct {
	Key   string
	Value string
}

// Record is the flat key/value form of one schema, insertion order
// preserved. Multi-valued attributes travel in the delimited encoding of
// the codec package.
type Record []Field

// Get returns the value stored under key.
func (r Record) Get(key string) (string, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Set stores value under key, replacing an existing field in place.
func (r *Record) Set(key, value string) {
	for i, f := range *r {
		if f.Key == key {
			(*r)[i].Value = value
			return
		}
	}
	*r = append(*r, Field{Key: key, Value: value})
}

// Keys returns the field names in record order.
func (r Record) Keys() []string {
	out := make([]string, len(r))
	for i, f := range r {
		out[i] = f.Key
	}
	return out
}

// MarshalYAML renders the record as a mapping with its field order kept.
func (r Record) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range r {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Value})
	}
	return node, nil
}

func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: expected a mapping", ErrRecord, node.Line)
	}
	out := make(Record, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		out = append(out, Field{
			Key:   node.Content[i].Value,
			Value: node.Content[i+1].Value,
		})
	}
	*r = out
	return nil
}

// Record renders the schema in its flat form. Attributes still holding
// their construction default stay out, so records only carry what was
// deliberately set. Feeding the result to FromRecord reproduces the
// schema, provenance excluded.
func (q *Question) Record() Record {
	opts := codec.Defaults()
	var r Record

	r.Set("name", q.Name)
	r.Set("description", q.Description)
	r.Set("type", q.Response.Code())
	r.Set("dtype", q.Kind.Code())
	r.Set("clean_name", q.CleanName)
	if q.FreeResponse {
		r.Set("free_response", "true")
	}
	if len(q.Order) > 0 {
		r.Set("order", codec.JoinValues(displayAll(q.Order), opts))
	}
	if len(q.Extremes) > 0 && !valuesEqual(q.Extremes, defaultExtremes(q.Order)) {
		r.Set("extremes", codec.JoinValues(displayAll(q.Extremes), opts))
	}
	if !q.RefValue.IsNull() && !(len(q.Order) > 0 && q.RefValue.Equal(q.Order[0])) {
		r.Set("ref_value", q.RefValue.String())
	}
	if !q.Lower.IsNull() || !q.Upper.IsNull() {
		limits := []string{q.Lower.String(), q.Upper.String()}
		r.Set("limits", codec.JoinValues(limits, opts))
	}
	if q.Units != "" {
		r.Set("units", q.Units)
	}
	if q.SigFigs > 0 {
		r.Set("sig_figs", strconv.Itoa(q.SigFigs))
	}
	if !q.FrequencyCutoff.IsNull() {
		r.Set("frequency_cutoff", q.FrequencyCutoff.String())
	}
	if !q.Placeholders.Missing.Equal(primitive.StandardMissing()) {
		r.Set("missing", codec.JoinValues(q.Placeholders.Missing.Strings(), opts))
	}
	if q.Placeholders.Blanks.Len() > 0 {
		r.Set("blanks", codec.JoinValues(q.Placeholders.Blanks.Strings(), opts))
	}
	if q.Placeholders.Ambiguous.Len() > 0 {
		r.Set("ambiguous", codec.JoinValues(q.Placeholders.Ambiguous.Strings(), opts))
	}
	if len(q.Codes) > 0 {
		pairs := make([]codec.Pair, len(q.Codes))
		for i, c := range q.Codes {
			pairs[i] = codec.Pair{Key: c.Code.String(), Value: c.Label}
		}
		r.Set("var_labels", codec.JoinPairs(pairs, opts))
	}
	if len(q.SourceColumns) > 0 {
		r.Set("source_columns", codec.JoinValues(q.SourceColumns, opts))
	}
	if len(q.DerivativeColumns) > 0 {
		r.Set("derivative_columns", codec.JoinValues(q.DerivativeColumns, opts))
	}
	if q.OriginalName != "" {
		r.Set("original_name", q.OriginalName)
	}
	if q.Notes != "" {
		r.Set("notes", q.Notes)
	}
	for _, k := range sortedKeys(q.Extra) {
		r.Set(k, q.Extra[k])
	}
	return r
}

// DecodeParams rebuilds construction parameters from a flat record.
// Unknown keys survive in Extra rather than failing the decode.
func DecodeParams(r Record) (Params, error) {
	opts := codec.Defaults()
	var p Params

	// the declared kind steers how every typed field parses
	kind := primitive.Kind(0)
	if s, ok := r.Get("dtype"); ok {
		k, err := primitive.ParseKind(s)
		if err != nil {
			return Params{}, fmt.Errorf("%w: %v", ErrRecord, err)
		}
		kind = k
	}
	p.Kind = kind

	for _, f := range r {
		var err error
		switch f.Key {
		case "dtype":
			// already handled
		case "name":
			p.Name = f.Value
		case "description":
			p.Description = f.Value
		case "clean_name":
			p.CleanName = f.Value
		case "original_name":
			p.OriginalName = f.Value
		case "units":
			p.Units = f.Value
		case "notes":
			p.Notes = f.Value
		case "type":
			p.Response, err = ParseResponse(f.Value)
		case "free_response":
			p.FreeResponse, err = strconv.ParseBool(strings.TrimSpace(f.Value))
			if err != nil {
				err = fmt.Errorf("free_response %q is not boolean", f.Value)
			}
		case "sig_figs":
			p.SigFigs, err = strconv.Atoi(strings.TrimSpace(f.Value))
			if err != nil {
				err = fmt.Errorf("sig_figs %q is not an integer", f.Value)
			}
		case "frequency_cutoff":
			p.FrequencyCutoff, err = parseNumber(f.Value)
		case "ref_value":
			p.RefValue, err = parseScalar(f.Value, kind)
		case "limits":
			p.Lower, p.Upper, err = parseLimits(f.Value, opts)
		case "order":
			d := codec.Parse(f.Value, opts)
			switch {
			case d.IsNull:
			case len(d.Pairs) > 0:
				order, codes := decodeCodedOrder(d.Pairs)
				p.Order = order
				if len(p.Codes) == 0 {
					p.Codes = codes
				}
			default:
				p.Order, err = parseValues(d.Items, kind)
			}
		case "extremes":
			p.Extremes, err = parseValues(decodedStrings(codec.Parse(f.Value, opts), opts), kind)
		case "missing":
			p.Missing = placeholderValues(f.Value, opts)
		case "blanks":
			p.Blanks = placeholderValues(f.Value, opts)
		case "ambiguous":
			p.Ambiguous = placeholderValues(f.Value, opts)
		case "var_labels":
			d := codec.Parse(f.Value, opts)
			if len(d.Pairs) == 0 && !d.IsNull {
				err = fmt.Errorf("var_labels %q is not key-coded", f.Value)
				break
			}
			p.Codes = p.Codes[:0]
			for _, pair := range d.Pairs {
				p.Codes = append(p.Codes, Coding{Code: looseValue(pair.Key), Label: pair.Value})
			}
		case "source_columns":
			p.SourceColumns = decodedStrings(codec.Parse(f.Value, opts), opts)
		case "derivative_columns":
			p.DerivativeColumns = decodedStrings(codec.Parse(f.Value, opts), opts)
		default:
			if p.Extra == nil {
				p.Extra = make(map[string]string)
			}
			p.Extra[f.Key] = f.Value
		}
		if err != nil {
			return Params{}, fmt.Errorf("%w: %v", ErrRecord, err)
		}
	}
	return p, nil
}

// FromRecord decodes a flat record and builds the schema it describes.
func FromRecord(r Record) (*Question, error) {
	p, err := DecodeParams(r)
	if err != nil {
		return nil, err
	}
	return New(p)
}

// Diff lists the attribute changes from old to updated as
// "key : old > new" segments, "add" standing in for attributes old
// never had.
func Diff(old, updated *Question) []string {
	before := old.Record()
	after := updated.Record()

	var out []string
	seen := make(map[string]bool, len(before))
	for _, f := range before {
		seen[f.Key] = true
		next, ok := after.Get(f.Key)
		switch {
		case !ok:
			out = append(out, fmt.Sprintf("%s : %s > None", f.Key, f.Value))
		case next != f.Value:
			out = append(out, fmt.Sprintf("%s : %s > %s", f.Key, f.Value, next))
		}
	}
	for _, f := range after {
		if !seen[f.Key] {
			out = append(out, fmt.Sprintf("%s : add > %s", f.Key, f.Value))
		}
	}
	return out
}

// parseScalar reads one token in the declared kind. Boolean tokens stay
// textual, they are format tokens rather than truth values.
func parseScalar(tok string, kind primitive.Kind) (primitive.Value, error) {
	tok = strings.TrimSpace(tok)
	switch kind {
	default:
		return primitive.Text(tok), nil
	case primitive.KindInt:
		i, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return primitive.Null, fmt.Errorf("%q is not an integer", tok)
		}
		return primitive.Int(i), nil
	case primitive.KindFloat:
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return primitive.Null, fmt.Errorf("%q is not a float", tok)
		}
		return primitive.Float(f), nil
	}
}

func parseValues(items []string, kind primitive.Kind) ([]primitive.Value, error) {
	out := make([]primitive.Value, 0, len(items))
	for _, tok := range items {
		v, err := parseScalar(tok, kind)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// parseNumber reads a token as an integer when it can, a float otherwise.
func parseNumber(tok string) (primitive.Value, error) {
	tok = strings.TrimSpace(tok)
	if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return primitive.Int(i), nil
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return primitive.Null, fmt.Errorf("%q is not numeric", tok)
	}
	return primitive.Float(f), nil
}

// looseValue reads a token numerically when possible, textually otherwise.
func looseValue(tok string) primitive.Value {
	if v, err := parseNumber(tok); err == nil {
		return v
	}
	return primitive.Text(strings.TrimSpace(tok))
}

// parseLimits reads the two-sided "lower | upper" form, either side the
// null literal for unbounded.
func parseLimits(s string, opts codec.Options) (lower, upper primitive.Value, err error) {
	d := codec.Parse(s, opts)
	if d.IsNull {
		return primitive.Null, primitive.Null, nil
	}
	items := decodedStrings(d, opts)
	if len(items) != 2 {
		return primitive.Null, primitive.Null, fmt.Errorf("limits %q need a lower and an upper side", s)
	}
	sides := make([]primitive.Value, 2)
	for i, tok := range items {
		if tok == opts.Null {
			sides[i] = primitive.Null
			continue
		}
		if sides[i], err = parseNumber(tok); err != nil {
			return primitive.Null, primitive.Null, err
		}
	}
	return sides[0], sides[1], nil
}

// decodeCodedOrder reads a key-coded admissible list. The key side is
// admissible, the numeric side becomes the code table, so both
// "0=female | 1=male" and "female=0 | male=1" yield the same table.
func decodeCodedOrder(pairs []codec.Pair) ([]primitive.Value, []Coding) {
	order := make([]primitive.Value, 0, len(pairs))
	codes := make([]Coding, 0, len(pairs))
	for _, p := range pairs {
		key := looseValue(p.Key)
		order = append(order, key)
		switch {
		case key.IsNumeric():
			codes = append(codes, Coding{Code: key, Label: p.Value})
		default:
			if num, err := parseNumber(p.Value); err == nil {
				codes = append(codes, Coding{Code: num, Label: p.Key})
			} else {
				codes = append(codes, Coding{Code: key, Label: p.Value})
			}
		}
	}
	return order, codes
}

// placeholderValues reads a placeholder vocabulary. The null literal
// means explicitly none, which is different from the key being absent.
func placeholderValues(s string, opts codec.Options) []primitive.Value {
	d := codec.Parse(s, opts)
	if d.IsNull {
		return []primitive.Value{}
	}
	items := decodedStrings(d, opts)
	out := make([]primitive.Value, len(items))
	for i, tok := range items {
		out[i] = primitive.Text(tok)
	}
	return out
}

// decodedStrings flattens a decode back to raw elements, re-joining
// pairs that were never meant to be key-coded.
func decodedStrings(d codec.Decoded, opts codec.Options) []string {
	if d.IsNull {
		return nil
	}
	if len(d.Pairs) > 0 {
		out := make([]string, len(d.Pairs))
		for i, p := range d.Pairs {
			out[i] = p.Key + opts.CodeDelim + p.Value
		}
		return out
	}
	return d.Items
}

func displayAll(values []primitive.Value) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

func valuesEqual(a, b []primitive.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
