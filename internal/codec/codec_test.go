package codec

import (
	"testing"
)

func TestJoinValues(t *testing.T) {
	tests := []struct {
		name     string
		items    []string
		opts     Options
		expected string
	}{
		{"plain_list", []string{"Dorm", "Haus"}, Options{}, "Dorm | Haus"},
		{"single", []string{"Dorm"}, Options{}, "Dorm"},
		{"empty_is_null", nil, Options{}, "None"},
		{"custom_null", nil, Options{Null: "---"}, "---"},
		{"custom_delim", []string{"a", "b"}, Options{VarDelim: "; "}, "a; b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinValues(tt.items, tt.opts); got != tt.expected {
				t.Errorf("JoinValues(%v) = %q, want %q", tt.items, got, tt.expected)
			}
		})
	}
}

func TestJoinPairs(t *testing.T) {
	pairs := []Pair{{"0", "female"}, {"1", "male"}}

	if got := JoinPairs(pairs, Options{}); got != "0=female | 1=male" {
		t.Errorf("JoinPairs = %q", got)
	}
	if got := JoinPairs(nil, Options{}); got != "None" {
		t.Errorf("JoinPairs(nil) = %q, want None", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		opts  Options
		check func(t *testing.T, d Decoded)
	}{
		{"null_literal", "None", Options{}, func(t *testing.T, d Decoded) {
			if !d.IsNull {
				t.Error("expected IsNull")
			}
		}},
		{"empty_string", "  ", Options{}, func(t *testing.T, d Decoded) {
			if !d.IsNull {
				t.Error("expected IsNull")
			}
		}},
		{"custom_null", "---", Options{Null: "---"}, func(t *testing.T, d Decoded) {
			if !d.IsNull {
				t.Error("expected IsNull")
			}
		}},
		{"plain_list", "Dorm | Haus", Options{}, func(t *testing.T, d Decoded) {
			if len(d.Items) != 2 || d.Items[0] != "Dorm" || d.Items[1] != "Haus" {
				t.Errorf("Items = %v", d.Items)
			}
		}},
		{"single_item", "Dorm", Options{}, func(t *testing.T, d Decoded) {
			if len(d.Items) != 1 || d.Items[0] != "Dorm" {
				t.Errorf("Items = %v", d.Items)
			}
		}},
		{"key_coded", "0=female | 1=male", Options{}, func(t *testing.T, d Decoded) {
			want := []Pair{{"0", "female"}, {"1", "male"}}
			if len(d.Pairs) != len(want) {
				t.Fatalf("Pairs = %v", d.Pairs)
			}
			for i := range want {
				if d.Pairs[i] != want[i] {
					t.Errorf("Pairs[%d] = %v, want %v", i, d.Pairs[i], want[i])
				}
			}
		}},
		{"mixed_stays_plain", "a=1 | b", Options{}, func(t *testing.T, d Decoded) {
			if d.Pairs != nil || len(d.Items) != 2 {
				t.Errorf("mixed input should stay a plain list: %+v", d)
			}
		}},
		{"value_keeps_delim", "note=a=b", Options{}, func(t *testing.T, d Decoded) {
			if len(d.Pairs) != 1 || d.Pairs[0].Key != "note" || d.Pairs[0].Value != "a=b" {
				t.Errorf("Pairs = %v", d.Pairs)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Parse(tt.in, tt.opts))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	items := []string{"Striker", "D-man", "Goalie"}
	d := Parse(JoinValues(items, Options{}), Options{})
	if len(d.Items) != 3 {
		t.Fatalf("round trip lost items: %v", d.Items)
	}
	for i := range items {
		if d.Items[i] != items[i] {
			t.Errorf("round trip item %d = %q, want %q", i, d.Items[i], items[i])
		}
	}

	pairs := []Pair{{"0", "female"}, {"1", "male"}}
	d = Parse(JoinPairs(pairs, Options{}), Options{})
	if len(d.Pairs) != 2 || d.Pairs[0] != pairs[0] || d.Pairs[1] != pairs[1] {
		t.Errorf("round trip lost pairs: %v", d.Pairs)
	}
}
