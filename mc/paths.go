package mc

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Define risk-neutral geometric Brownian motion of the underlying price.
type GBM struct {
	Spot  float64
	Drift float64
	Vol   float64
}

// Matrix simulates n antithetic price paths over the given number of steps
// of length dt. Row t holds the cross section of prices at step t, so row 0
// is Spot everywhere. Paths are simulated in antithetic pairs: path i and
// path n/2+i share negated normal draws, hence n must be even. All draws
// come from src, so equal sources give identical matrices.
func (m GBM) Matrix(steps, n int, dt float64, src rand.Source) *mat.Dense {
	if n%2 != 0 {
		panic("mc: antithetic path count must be even")
	}
	half := n / 2
	// Pre compute the constants of the exact log-price step
	a := (m.Drift - 0.5*m.Vol*m.Vol) * dt
	b := m.Vol * math.Sqrt(dt)
	// Initialise Std Normal generator
	d := distuv.Normal{Mu: 0.0, Sigma: 1.0, Src: src}

	x := mat.NewDense(steps+1, n, nil)
	s0 := x.RawRowView(0)
	for i := range s0 {
		s0[i] = m.Spot
	}
	z := make([]float64, n)
	for t := 1; t <= steps; t++ {
		// Draw half the variates, mirror the rest
		for i := 0; i < half; i++ {
			u := d.Rand()
			z[i], z[half+i] = u, -u
		}
		prev := x.RawRowView(t - 1)
		cur := x.RawRowView(t)
		for i := range cur {
			cur[i] = prev[i] * math.Exp(a+b*z[i])
		}
	}
	return x
}
