package smoothing

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func assertSeries(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("series length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > tolerance {
			t.Errorf("series[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNewRejectsBadParameters(t *testing.T) {
	tests := []struct {
		name   string
		window int
		passes int
	}{
		{"WindowOfOne", 1, 1},
		{"WindowOfZero", 0, 1},
		{"NegativeWindow", -3, 1},
		{"ZeroPasses", 3, 0},
		{"NegativePasses", 3, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.window, tt.passes); err == nil {
				t.Errorf("New(%d, %d) accepted invalid parameters", tt.window, tt.passes)
			}
		})
	}
}

func TestSmoothUniformSeriesIsInvariant(t *testing.T) {
	s, err := New(5, 3)
	if err != nil {
		t.Fatal(err)
	}

	in := []float64{80, 80, 80, 80, 80, 80}
	got := s.Smooth(in)
	assertSeries(t, got, in)
}

func TestSmoothAlternatingSeries(t *testing.T) {
	s, err := New(3, 1)
	if err != nil {
		t.Fatal(err)
	}

	got := s.Smooth([]float64{10, 20, 10, 20, 10})
	assertSeries(t, got, []float64{15, 40.0 / 3, 50.0 / 3, 40.0 / 3, 15})
}

func TestSmoothBoundaryWindowsShrink(t *testing.T) {
	// A 2-frame series with a 3-frame window: both ends lose the
	// out-of-range neighbour and average over what remains.
	s, err := New(3, 1)
	if err != nil {
		t.Fatal(err)
	}

	got := s.Smooth([]float64{10, 30})
	assertSeries(t, got, []float64{20, 20})
}

func TestSmoothWindowWiderThanSeries(t *testing.T) {
	s, err := New(5, 1)
	if err != nil {
		t.Fatal(err)
	}

	// Every position sees all three frames.
	got := s.Smooth([]float64{30, 60, 90})
	assertSeries(t, got, []float64{60, 60, 60})
}

func TestSmoothReadsPrePassValues(t *testing.T) {
	// Frame 2's window includes frame 1, which a naive in-place sweep
	// would already have replaced with 2 by the time frame 2 is averaged.
	s, err := New(3, 1)
	if err != nil {
		t.Fatal(err)
	}

	got := s.Smooth([]float64{0, 6, 0})
	assertSeries(t, got, []float64{3, 2, 3})
}

func TestSmoothMultiplePassesCompound(t *testing.T) {
	s, err := New(3, 2)
	if err != nil {
		t.Fatal(err)
	}

	// Pass 1 gives [3, 2, 3]; pass 2 averages that snapshot again.
	got := s.Smooth([]float64{0, 6, 0})
	assertSeries(t, got, []float64{2.5, 8.0 / 3, 2.5})
}

func TestSmoothEvenWindowBiasesTowardPast(t *testing.T) {
	// Width 2 averages each frame with its predecessor only.
	s, err := New(2, 1)
	if err != nil {
		t.Fatal(err)
	}

	got := s.Smooth([]float64{10, 20, 40})
	assertSeries(t, got, []float64{10, 15, 30})
}

func TestSmoothDoesNotMutateInput(t *testing.T) {
	s, err := New(3, 2)
	if err != nil {
		t.Fatal(err)
	}

	in := []float64{5, 50, 5, 50}
	s.Smooth(in)

	want := []float64{5, 50, 5, 50}
	for i := range want {
		if in[i] != want[i] {
			t.Fatalf("input mutated at %d: %v", i, in)
		}
	}
}
