package histo

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"
)

func TestHistoIO(Te *testing.T) {
	rawdata := []float64{1, 6, 3, 2, 4, 5, 7, 6, 3.5, 3, 5, 1, 1, 0, 0, 5, 8, 1, 2, 3, 44, 3, 7, 3, 1, 3, 5, 32, 1, math.NaN()}
	D := NewData("twist_CG", []float64{0, 1, 2, 3, 4, 8}, rawdata)
	fmt.Println(D.String())
	//44 and 32 are out of range, NaN is ignored, 8 goes to the closed last bin.
	if D.Total() != 27 || D.Sum() != 27 {
		Te.Errorf("wrong total %d, sum %v", D.Total(), D.Sum())
	}
	if D.View()[0] != 2 || D.View()[1] != 6 || D.View()[3] != 7 || D.View()[4] != 10 {
		Te.Errorf("wrong counts %v", D.View())
	}
	j, err := json.Marshal(D)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("JSON:", string(j))
	var back struct {
		Label    string    `json:"label"`
		Total    int       `json:"total"`
		Dividers []float64 `json:"dividers"`
		Histo    []float64 `json:"histo"`
	}
	if err := json.Unmarshal(j, &back); err != nil {
		Te.Fatal(err)
	}
	if back.Label != "twist_CG" || back.Total != 27 || len(back.Dividers) != len(back.Histo)+1 || back.Histo[4] != 10 {
		Te.Errorf("wrong JSON rendering: %s", j)
	}
	D.Normalize()
	if math.Abs(D.Sum()-1) > 1e-12 {
		Te.Errorf("normalized histogram sums %v", D.Sum())
	}
	D.AddData(0.5)
	if D.Total() != 28 || math.Abs(D.Sum()-1) > 1e-12 {
		Te.Errorf("AddData broke normalization: %d %v", D.Total(), D.Sum())
	}
}

func TestAutoDividers(Te *testing.T) {
	data := make([]float64, 1000)
	for i := range data {
		data[i] = float64(i % 100)
	}
	n := AutoBins(data)
	//Sturges bins are 9.03 wide, Freedman-Diaconis ones about 10, so Sturges wins.
	if n != 11 {
		Te.Errorf("expected 11 bins, got %d", n)
	}
	D := New("roll", data)
	if D.Total() != 1000 {
		Te.Errorf("all points should be counted, got %d", D.Total())
	}
	var integral float64
	div := D.CopyDividers()
	for i, v := range D.Density() {
		integral += v * (div[i+1] - div[i])
	}
	if math.Abs(integral-1) > 1e-12 {
		Te.Errorf("density integrates to %v", integral)
	}
	if New("nan", []float64{math.NaN()}) != nil {
		Te.Error("histogram of no data")
	}
	if c := New("const", []float64{2, 2, 2}); c.Total() != 3 || len(c.Bins()) != 1 {
		Te.Errorf("constant data histogram wrong: %v", c)
	}
}
