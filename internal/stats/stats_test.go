package stats

import (
	"math"
	"testing"
)

func TestSortedFinite(t *testing.T) {
	got := SortedFinite([]float64{3, math.NaN(), 1, math.Inf(1), 2, math.Inf(-1)})
	want := []float64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSubsample(t *testing.T) {
	data := make([]float64, 1000)
	for i := range data {
		data[i] = float64(i)
	}

	got := Subsample(data, 10)
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	// Even stride: first sample at 0, last near the end.
	if got[0] != 0 {
		t.Errorf("got[0] = %v, want 0", got[0])
	}
	if got[9] != 900 {
		t.Errorf("got[9] = %v, want 900", got[9])
	}

	// No-op cases return the input unchanged.
	if out := Subsample(data, 0); len(out) != len(data) {
		t.Errorf("n=0: len = %d, want %d", len(out), len(data))
	}
	if out := Subsample(data, 2000); len(out) != len(data) {
		t.Errorf("n>len: len = %d, want %d", len(out), len(data))
	}
}

func TestPercentile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 10},
		{25, 20},
		{50, 30},
		{75, 40},
		{100, 50},
		{-5, 10},
		{150, 50},
		{12.5, 15}, // interpolates between ranks
	}
	for _, tt := range tests {
		if got := Percentile(sorted, tt.p); got != tt.want {
			t.Errorf("Percentile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestPercentile_Degenerate(t *testing.T) {
	if got := Percentile(nil, 50); !math.IsNaN(got) {
		t.Errorf("empty slice = %v, want NaN", got)
	}
	if got := Percentile([]float64{7}, 50); got != 7 {
		t.Errorf("single value = %v, want 7", got)
	}
}

func TestMedian(t *testing.T) {
	if got := Median([]float64{1, 2, 3}); got != 2 {
		t.Errorf("odd length = %v, want 2", got)
	}
	if got := Median([]float64{1, 2, 3, 4}); got != 2.5 {
		t.Errorf("even length = %v, want 2.5", got)
	}
}

func TestMeanStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := Mean(values); got != 5 {
		t.Errorf("Mean = %v, want 5", got)
	}
	if got := StdDev(values); math.Abs(got-2) > 1e-12 {
		t.Errorf("StdDev = %v, want 2", got)
	}

	if got := StdDev([]float64{42}); got != 0 {
		t.Errorf("StdDev of one value = %v, want 0", got)
	}
	if got := Mean(nil); !math.IsNaN(got) {
		t.Errorf("Mean of empty = %v, want NaN", got)
	}
}
