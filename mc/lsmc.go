package mc

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Value prices the contract by least-squares Monte Carlo and returns the
// estimate together with its Monte Carlo standard error.
func (p *Pricer) Value() (float64, float64, error) {
	dt := p.opt.Maturity / float64(p.sim.Steps)
	disc := math.Exp(-p.opt.Rate * dt)
	drift := p.opt.Rate
	if p.sim.DividendDrift {
		drift -= p.opt.Dividend
	}
	model := GBM{Spot: p.opt.Spot, Drift: drift, Vol: p.opt.Vol}
	prices := model.Matrix(p.sim.Steps, p.sim.Paths, dt, rand.NewSource(p.sim.Seed))
	exercise := p.pay.Matrix(prices)
	cash, err := p.induct(prices, exercise, disc)
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	// Discount the step-1 cashflows back to time zero
	pv := make([]float64, p.sim.Paths)
	copy(pv, cash.RawRowView(1))
	for i := range pv {
		pv[i] *= disc
	}
	mean, sd := stat.MeanStdDev(pv, nil)
	return mean, sd / math.Sqrt(float64(p.sim.Paths)), nil
}

// Price is Value without the standard error.
func (p *Pricer) Price() (float64, error) {
	v, _, err := p.Value()
	return v, err
}

// induct rolls the exercise decision backward from maturity. Row t of the
// returned matrix holds each path's cashflow valued at step t assuming
// optimal exercise from t onward, so a decision taken at an earlier step
// supersedes any later cashflow on the same path. Rows 1..steps are
// populated; with a single step the loop body never runs and the valuation
// degenerates to the European estimate.
func (p *Pricer) induct(prices, exercise *mat.Dense, disc float64) (*mat.Dense, error) {
	steps, n := p.sim.Steps, p.sim.Paths
	cash := mat.NewDense(steps+1, n, nil)
	copy(cash.RawRowView(steps), exercise.RawRowView(steps))
	y := make([]float64, n)
	for t := steps - 1; t >= 1; t-- {
		next := cash.RawRowView(t + 1)
		for i := range y {
			y[i] = next[i] * disc
		}
		ex := exercise.RawRowView(t)
		cont, err := p.continuation(prices.RawRowView(t), ex, y)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", t, err)
		}
		row := cash.RawRowView(t)
		for i := range row {
			switch {
			case cont == nil:
				row[i] = y[i]
			case p.sim.ITMOnly && ex[i] <= 0:
				row[i] = y[i]
			case ex[i] > cont[i]:
				row[i] = ex[i]
			default:
				row[i] = y[i]
			}
		}
	}
	return cash, nil
}

// continuation estimates per-path continuation values at one step by
// cross-sectional regression of the discounted downstream cashflows y on
// the step's prices. Under ITMOnly the fit uses only in-the-money paths;
// when too few paths are in the money to support the basis it returns nil
// and the step holds everywhere.
func (p *Pricer) continuation(price, exercise, y []float64) ([]float64, error) {
	xs, ys := price, y
	if p.sim.ITMOnly {
		xs, ys = nil, nil
		for i, e := range exercise {
			if e > 0 {
				xs = append(xs, price[i])
				ys = append(ys, y[i])
			}
		}
		if len(xs) <= polyDegree {
			return nil, nil
		}
	}
	coef, err := polyfit(xs, ys, polyDegree)
	if err != nil {
		return nil, err
	}
	cont := make([]float64, len(price))
	for i, s := range price {
		cont[i] = polyval(coef, s)
	}
	return cont, nil
}
