// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

// Package weights implements the parametric lag-weight shapes used to
// restrict a high-dimensional lag polynomial to a few hyperparameters.
package weights

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Kind tags the family a shape belongs to. Tests that only make sense for a
// particular family match on the Kind instead of the shape's name.
type Kind int

const (
	// KindFree is an unrestricted block: one parameter per lag.
	KindFree Kind = iota
	// KindPolynomial is the Almon polynomial family.
	KindPolynomial
	// KindExponentialAlmon is the normalized exponential Almon family.
	KindExponentialAlmon
	// KindCustom is any other user supplied shape.
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindFree:
		return "free"
	case KindPolynomial:
		return "polynomial"
	case KindExponentialAlmon:
		return "exponential-almon"
	case KindCustom:
		return "custom"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Tag identifies a shape. Name is informational except for KindCustom,
// where it is the only thing telling two custom shapes apart.
type Tag struct {
	Kind Kind
	Name string
}

func (t Tag) String() string {
	if t.Kind == KindCustom {
		return "custom(" + t.Name + ")"
	}
	return t.Name
}

// Shape maps a parameter vector p to d lag weights.
type Shape interface {
	Tag() Tag
	// NumParams is the required length of p, or -1 when any length >= 1 works.
	NumParams() int
	// Weights returns the d lag coefficients implied by p.
	Weights(p []float64, d int) []float64
}

// Gradienter is implemented by shapes with a closed-form gradient. The result
// is d×len(p) with entry (i, j) = ∂w_i/∂p_j.
type Gradienter interface {
	Gradient(p []float64, d int) *mat.Dense
}

// CheckParams validates len(p) against s.NumParams.
func CheckParams(s Shape, p []float64) error {
	n := s.NumParams()
	if len(p) == 0 {
		return fmt.Errorf("shape %s: empty parameter vector", s.Tag())
	}
	if n >= 0 && len(p) != n {
		return fmt.Errorf("shape %s: need %d parameters, got %d", s.Tag(), n, len(p))
	}
	return nil
}

var registry = map[string]Shape{
	"nealmon":  NEAlmon{},
	"almonp":   AlmonP{},
	"expalmon": ExpAlmon{},
	"nbeta":    NBeta{},
	"free":     Free{},
}

// ByName looks up one of the built-in shapes.
func ByName(name string) (Shape, error) {
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown weight shape %q (options: %v)", name, Names())
	}
	return s, nil
}

// Names lists the built-in shape names in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
