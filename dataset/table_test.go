package dataset

import (
	"errors"
	"testing"

	"datadict/primitive"
)

func TestTableAdd(t *testing.T) {
	tbl, err := NewTable(
		Strings("name", "Bitty", "Ransom", "Holster"),
		Strings("position", "Striker", "D-man", "D-man"),
	)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	if got := tbl.Names(); len(got) != 2 || got[0] != "name" || got[1] != "position" {
		t.Errorf("Names() = %v", got)
	}
	if tbl.Rows() != 3 {
		t.Errorf("Rows() = %d, want 3", tbl.Rows())
	}

	if err := tbl.Add(Strings("name", "x", "y", "z")); !errors.Is(err, ErrDuplicateColumn) {
		t.Errorf("duplicate add error = %v, want ErrDuplicateColumn", err)
	}
	if err := tbl.Add(Strings("short", "only one")); !errors.Is(err, ErrColumnLength) {
		t.Errorf("ragged add error = %v, want ErrColumnLength", err)
	}

	col, ok := tbl.Column("position")
	if !ok || col.Get(0).String() != "Striker" {
		t.Errorf("Column(position) lookup failed: ok=%v", ok)
	}
	if _, ok := tbl.Column("missing"); ok {
		t.Error("Column(missing) should not resolve")
	}
}

func TestColumnApply(t *testing.T) {
	col := Strings("years", "1", "2", "2", "4")

	col.Apply(func(v primitive.Value) primitive.Value {
		if v.Equal(primitive.Text("2")) {
			return primitive.Null
		}
		return v
	})

	want := []primitive.Value{primitive.Text("1"), primitive.Null, primitive.Null, primitive.Text("4")}
	for i, v := range col.Values() {
		if !v.Equal(want[i]) {
			t.Errorf("cell %d = %v, want %v", i, v, want[i])
		}
	}
}

func TestColumnUniqueAndCount(t *testing.T) {
	col := NewColumn("status",
		primitive.Text("ok"), primitive.Null, primitive.Text("ok"),
		primitive.Text("down"), primitive.Int(1), primitive.Float(1))

	uniq := col.Unique()
	want := []primitive.Value{primitive.Text("ok"), primitive.Text("down"), primitive.Int(1)}
	if len(uniq) != len(want) {
		t.Fatalf("Unique() = %v, want %v", uniq, want)
	}
	for i := range want {
		if !uniq[i].Equal(want[i]) {
			t.Errorf("Unique()[%d] = %v, want %v", i, uniq[i], want[i])
		}
	}

	if n := col.CountOf(primitive.Text("ok")); n != 2 {
		t.Errorf("CountOf(ok) = %d, want 2", n)
	}
	if n := col.CountOf(primitive.Int(1)); n != 2 {
		t.Errorf("CountOf(1) = %d, want 2 (numeric bridge)", n)
	}
}
