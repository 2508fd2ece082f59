package astroviz

import (
	"fmt"
	"math"
	"strings"
)

// Stretch is a monotonic transform on the normalized [0, 1] intensity range.
//
// Forward maps a normalized input to a display intensity; Inverse undoes it.
// Implementations clip their input to [0, 1], so Forward(Inverse(y)) == y
// and Inverse(Forward(x)) == x hold on that range (up to floating point).
// All implementations are immutable value types, safe for concurrent use.
type Stretch interface {
	Forward(x float64) float64
	Inverse(y float64) float64
}

// LinearStretch is the identity transform.
type LinearStretch struct{}

func (LinearStretch) Forward(x float64) float64 { return clamp01(x) }
func (LinearStretch) Inverse(y float64) float64 { return clamp01(y) }

// SqrtStretch brightens faint features with y = sqrt(x).
type SqrtStretch struct{}

func (SqrtStretch) Forward(x float64) float64 { return math.Sqrt(clamp01(x)) }
func (SqrtStretch) Inverse(y float64) float64 { y = clamp01(y); return y * y }

// SquaredStretch darkens faint features with y = x².
type SquaredStretch struct{}

func (SquaredStretch) Forward(x float64) float64 { x = clamp01(x); return x * x }
func (SquaredStretch) Inverse(y float64) float64 { return math.Sqrt(clamp01(y)) }

// PowerStretch applies y = x^A. A must be positive; non-positive values
// fall back to 1 (identity).
type PowerStretch struct {
	A float64
}

func (s PowerStretch) exp() float64 {
	if s.A <= 0 {
		return 1
	}
	return s.A
}

func (s PowerStretch) Forward(x float64) float64 { return math.Pow(clamp01(x), s.exp()) }
func (s PowerStretch) Inverse(y float64) float64 { return math.Pow(clamp01(y), 1/s.exp()) }

// PowerDistStretch applies y = (A^x - 1)/(A - 1), an exponential-family
// stretch that suppresses faint features. A must be positive and not 1;
// invalid values fall back to the default 1000.
type PowerDistStretch struct {
	A float64
}

func (s PowerDistStretch) base() float64 {
	if s.A <= 0 || s.A == 1 {
		return 1000
	}
	return s.A
}

func (s PowerDistStretch) Forward(x float64) float64 {
	a := s.base()
	return (math.Pow(a, clamp01(x)) - 1) / (a - 1)
}

func (s PowerDistStretch) Inverse(y float64) float64 {
	a := s.base()
	return math.Log(clamp01(y)*(a-1)+1) / math.Log(a)
}

// LogStretch applies y = ln(A·x + 1)/ln(A + 1), strongly lifting faint
// features. A must be positive; invalid values fall back to the default
// 1000.
type LogStretch struct {
	A float64
}

func (s LogStretch) factor() float64 {
	if s.A <= 0 {
		return 1000
	}
	return s.A
}

func (s LogStretch) Forward(x float64) float64 {
	a := s.factor()
	return math.Log(a*clamp01(x)+1) / math.Log(a+1)
}

func (s LogStretch) Inverse(y float64) float64 {
	a := s.factor()
	return (math.Pow(a+1, clamp01(y)) - 1) / a
}

// AsinhStretch applies y = asinh(x/A)/asinh(1/A), the inverse hyperbolic
// sine stretch. It is close to linear below the softening parameter A and
// logarithmic above it, which makes faint structure visible without
// saturating bright cores. A must be in (0, 1]; invalid values fall back to
// the default 0.1.
type AsinhStretch struct {
	A float64
}

func (s AsinhStretch) soften() float64 {
	if s.A <= 0 || s.A > 1 {
		return 0.1
	}
	return s.A
}

func (s AsinhStretch) Forward(x float64) float64 {
	a := s.soften()
	return math.Asinh(clamp01(x)/a) / math.Asinh(1/a)
}

func (s AsinhStretch) Inverse(y float64) float64 {
	a := s.soften()
	return a * math.Sinh(clamp01(y)*math.Asinh(1/a))
}

// SinhStretch applies y = sinh(x/A)/sinh(1/A), the inverse of the asinh
// stretch family. A must be in (0, 1]; invalid values fall back to the
// default 1/3.
type SinhStretch struct {
	A float64
}

func (s SinhStretch) soften() float64 {
	if s.A <= 0 || s.A > 1 {
		return 1.0 / 3
	}
	return s.A
}

func (s SinhStretch) Forward(x float64) float64 {
	a := s.soften()
	return math.Sinh(clamp01(x)/a) / math.Sinh(1/a)
}

func (s SinhStretch) Inverse(y float64) float64 {
	a := s.soften()
	return a * math.Asinh(clamp01(y)*math.Sinh(1/a))
}

// ContrastBiasStretch applies y = (x - Bias)·Contrast + 0.5 and clips the
// result, mirroring the contrast/bias controls of interactive viewers.
type ContrastBiasStretch struct {
	Contrast float64
	Bias     float64
}

func (s ContrastBiasStretch) Forward(x float64) float64 {
	return clamp01((clamp01(x)-s.Bias)*s.Contrast + 0.5)
}

func (s ContrastBiasStretch) Inverse(y float64) float64 {
	if s.Contrast == 0 {
		return 0
	}
	return clamp01((clamp01(y)-0.5)/s.Contrast + s.Bias)
}

// InvertedStretch swaps the forward and inverse directions of another
// stretch.
type InvertedStretch struct {
	S Stretch
}

func (s InvertedStretch) Forward(x float64) float64 { return s.S.Inverse(x) }
func (s InvertedStretch) Inverse(y float64) float64 { return s.S.Forward(y) }

// CompositeStretch applies Inner first, then Outer.
type CompositeStretch struct {
	Outer Stretch
	Inner Stretch
}

func (s CompositeStretch) Forward(x float64) float64 { return s.Outer.Forward(s.Inner.Forward(x)) }
func (s CompositeStretch) Inverse(y float64) float64 { return s.Inner.Inverse(s.Outer.Inverse(y)) }

// ParseStretch builds a stretch from its name and softening parameter, as
// used by configuration files and the command line. Recognized names:
// linear, sqrt, squared, power, powerdist, log, asinh, sinh. A param of 0
// selects each stretch's default.
func ParseStretch(name string, param float64) (Stretch, error) {
	switch strings.ToLower(name) {
	case "", "linear":
		return LinearStretch{}, nil
	case "sqrt":
		return SqrtStretch{}, nil
	case "squared":
		return SquaredStretch{}, nil
	case "power":
		return PowerStretch{A: param}, nil
	case "powerdist":
		return PowerDistStretch{A: param}, nil
	case "log":
		return LogStretch{A: param}, nil
	case "asinh":
		return AsinhStretch{A: param}, nil
	case "sinh":
		return SinhStretch{A: param}, nil
	default:
		return nil, fmt.Errorf("astroviz: unknown stretch %q", name)
	}
}
