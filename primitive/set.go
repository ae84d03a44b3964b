package primitive

// Set is a small ordered collection of distinct values. Membership uses
// Equal, so 1 and 1.0 occupy a single slot. A nil Set is empty.
type Set struct {
	values []Value
}

func NewSet(values ...Value) *Set {
	s := &Set{}
	s.Add(values...)
	return s
}

// Add appends values not already present, keeping first-occurrence order.
func (s *Set) Add(values ...Value) *Set {
	for _, v := range values {
		if !s.Contains(v) {
			s.values = append(s.values, v)
		}
	}
	return s
}

func (s *Set) Contains(v Value) bool {
	if s == nil {
		return false
	}
	for _, have := range s.values {
		if have.Equal(v) {
			return true
		}
	}
	return false
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// Values returns the members in insertion order.
func (s *Set) Values() []Value {
	if s == nil {
		return nil
	}
	return append([]Value(nil), s.values...)
}

// Strings returns the display forms of the members in insertion order.
func (s *Set) Strings() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.values))
	for i, v := range s.values {
		out[i] = v.String()
	}
	return out
}

// Equal reports whether both sets hold the same members, order ignored.
func (s *Set) Equal(o *Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	for _, v := range s.Values() {
		if !o.Contains(v) {
			return false
		}
	}
	return true
}

// Union returns a fresh set holding the members of the receiver followed by
// the members of the others.
func (s *Set) Union(others ...*Set) *Set {
	out := NewSet(s.Values()...)
	for _, o := range others {
		out.Add(o.Values()...)
	}
	return out
}
