package astroviz

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNormalizer_ZeroValue(t *testing.T) {
	// The zero value is full-range linear normalization.
	g, err := GridFrom([]float64{0, 5, 10}, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	out := Normalizer{}.Apply(g)
	want := []float64{0, 0.5, 1}
	if diff := cmp.Diff(want, out.Data(), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizer_IntervalAndStretch(t *testing.T) {
	g, err := GridFrom([]float64{0, 25, 100}, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	n := Normalizer{
		Interval: ManualInterval{Vmin: 0, Vmax: 100},
		Stretch:  SqrtStretch{},
	}
	out := n.Apply(g)
	want := []float64{0, 0.5, 1}
	if diff := cmp.Diff(want, out.Data(), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizer_ClipsOutsideInterval(t *testing.T) {
	g, err := GridFrom([]float64{-10, 50, 200}, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	n := Normalizer{Interval: ManualInterval{Vmin: 0, Vmax: 100}}
	out := n.Apply(g)
	want := []float64{0, 0.5, 1}
	if diff := cmp.Diff(want, out.Data(), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizer_NaNRendersBlack(t *testing.T) {
	g, err := GridFrom([]float64{math.NaN(), 5, math.Inf(-1), 10}, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	out := Normalizer{Interval: ManualInterval{Vmin: 0, Vmax: 10}}.Apply(g)
	want := []float64{0, 0.5, 0, 1}
	if diff := cmp.Diff(want, out.Data(), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizer_DegenerateInterval(t *testing.T) {
	// Constant data must render black, not divide by zero.
	g, err := GridFrom([]float64{7, 7, 7}, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	out := Normalizer{}.Apply(g)
	for i, v := range out.Data() {
		if v != 0 {
			t.Errorf("data[%d] = %v, want 0", i, v)
		}
	}
}

func TestNormalizer_Limits(t *testing.T) {
	g := rampGrid(t, 100)
	n := Normalizer{Interval: PercentileInterval{Percentile: 98}}
	vmin, vmax := n.Limits(g)
	if vmin <= 0 || vmax >= 99 {
		t.Errorf("Limits() = (%v, %v), want clipped inside (0, 99)", vmin, vmax)
	}
}
