package helix

import (
	"math"
	"testing"
)

func TestTableOps(Te *testing.T) {
	t, err := FromColumns([]string{"a", "b", "c"}, []float64{1, 2}, []float64{3, 4}, []float64{5, 6})
	if err != nil {
		Te.Fatal(err)
	}
	if t.Rows() != 2 || t.Cols() != 3 {
		Te.Fatalf("wrong dims %d %d", t.Rows(), t.Cols())
	}
	r := t.Reverse()
	if r.Name(0) != "c" || r.Position(0) != 3 {
		Te.Errorf("reverse failed: %v", r.Names())
	}
	s := Separator(2, SeparatorLabel)
	j, err := Concat(t, s, r)
	if err != nil {
		Te.Fatal(err)
	}
	if j.Cols() != 7 || !math.IsNaN(j.Col(3)[1]) {
		Te.Errorf("concat failed: %v", j.Names())
	}
	d := t.Dense()
	if d.At(1, 2) != 6 {
		Te.Errorf("dense layout wrong: %v", d.At(1, 2))
	}
	if _, err := t.Select([]int{3}); err == nil {
		Te.Error("out of range column selected")
	}
	diff, err := Sub(t, r)
	if err != nil {
		Te.Fatal(err)
	}
	if diff.Col(0)[0] != -4 {
		Te.Errorf("sub failed: %v", diff.Col(0))
	}
	if _, err := NewTable([]float64{1}, nil, nil, [][]float64{{1, 2}}); err == nil {
		Te.Error("ragged column accepted")
	}
}
