package mc

import (
	"fmt"
	"math"
)

// Greeks holds the finite-difference sensitivities of a contract. Every
// entry comes from re-pricing bumped copies of the contract under the same
// seed, so most of the simulation noise cancels in the differences.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
	Theta float64 `json:"theta"`
}

// Relative bump applied to spot, volatility and rate; theta shifts
// maturity by one trading day.
const (
	bumpFraction = 0.01
	dayStep      = 1.0 / 252.0
)

// reprice values a bumped variant of the contract under identical
// simulation settings.
func (p *Pricer) reprice(opt Option) (float64, error) {
	q, err := New(opt, p.sim)
	if err != nil {
		return math.NaN(), err
	}
	return q.Price()
}

// Delta is the first derivative of price with respect to spot, by central
// difference over a 1% spot bump.
func (p *Pricer) Delta() (float64, error) {
	h := bumpFraction * p.opt.Spot
	if h == 0 {
		return math.NaN(), fmt.Errorf("%w: zero spot leaves no bump for delta", ErrInvalidInputs)
	}
	up, down := p.opt, p.opt
	up.Spot += h
	down.Spot -= h
	pu, err := p.reprice(up)
	if err != nil {
		return math.NaN(), err
	}
	pd, err := p.reprice(down)
	if err != nil {
		return math.NaN(), err
	}
	return (pu - pd) / (2 * h), nil
}

// Gamma is the second derivative of price with respect to spot, by central
// difference of Delta on contracts bumped 1% either side. Each inner Delta
// re-derives its own bump from the shifted spot.
func (p *Pricer) Gamma() (float64, error) {
	h := bumpFraction * p.opt.Spot
	if h == 0 {
		return math.NaN(), fmt.Errorf("%w: zero spot leaves no bump for gamma", ErrInvalidInputs)
	}
	up, down := p.opt, p.opt
	up.Spot += h
	down.Spot -= h
	qu, err := New(up, p.sim)
	if err != nil {
		return math.NaN(), err
	}
	du, err := qu.Delta()
	if err != nil {
		return math.NaN(), err
	}
	qd, err := New(down, p.sim)
	if err != nil {
		return math.NaN(), err
	}
	dd, err := qd.Delta()
	if err != nil {
		return math.NaN(), err
	}
	return (du - dd) / (2 * h), nil
}

// Vega is the derivative of price with respect to volatility, by central
// difference over a 1% relative vol bump.
func (p *Pricer) Vega() (float64, error) {
	h := bumpFraction * p.opt.Vol
	up, down := p.opt, p.opt
	up.Vol += h
	down.Vol -= h
	pu, err := p.reprice(up)
	if err != nil {
		return math.NaN(), err
	}
	pd, err := p.reprice(down)
	if err != nil {
		return math.NaN(), err
	}
	return (pu - pd) / (2 * h), nil
}

// Rho is the derivative of price with respect to the riskless rate over a
// 1% relative rate bump. The difference switches to forward form when the
// down bump would push the rate negative.
func (p *Pricer) Rho() (float64, error) {
	h := bumpFraction * p.opt.Rate
	if h == 0 {
		return math.NaN(), fmt.Errorf("%w: zero rate leaves no bump for rho", ErrInvalidInputs)
	}
	up := p.opt
	up.Rate += h
	pu, err := p.reprice(up)
	if err != nil {
		return math.NaN(), err
	}
	if p.opt.Rate-h < 0 {
		base, err := p.Price()
		if err != nil {
			return math.NaN(), err
		}
		return (pu - base) / h, nil
	}
	down := p.opt
	down.Rate -= h
	pd, err := p.reprice(down)
	if err != nil {
		return math.NaN(), err
	}
	return (pu - pd) / (2 * h), nil
}

// Theta is the derivative of price with respect to calendar time, by
// central difference over a one trading day maturity shift. Contracts
// within a day of expiry fail the short-side revaluation.
func (p *Pricer) Theta() (float64, error) {
	up, down := p.opt, p.opt
	up.Maturity += dayStep
	down.Maturity -= dayStep
	pu, err := p.reprice(up)
	if err != nil {
		return math.NaN(), err
	}
	pd, err := p.reprice(down)
	if err != nil {
		return math.NaN(), err
	}
	return (pd - pu) / (2 * dayStep), nil
}

// Greeks computes all five sensitivities. The bumped revaluations are
// independent deterministic runs, so they are dispatched concurrently
// without giving up reproducibility.
func (p *Pricer) Greeks() (Greeks, error) {
	var g Greeks
	jobs := []struct {
		dst *float64
		fn  func() (float64, error)
	}{
		{&g.Delta, p.Delta},
		{&g.Gamma, p.Gamma},
		{&g.Vega, p.Vega},
		{&g.Rho, p.Rho},
		{&g.Theta, p.Theta},
	}
	errs := make(chan error, len(jobs))
	for _, j := range jobs {
		go func(dst *float64, fn func() (float64, error)) {
			v, err := fn()
			*dst = v
			errs <- err
		}(j.dst, j.fn)
	}
	var first error
	for range jobs {
		if err := <-errs; err != nil && first == nil {
			first = err
		}
	}
	if first != nil {
		return Greeks{}, first
	}
	return g, nil
}
