package mc

//go:generate mockgen -package mockmc -destination mock/valuer.go github.com/banachtech/painted-wolf/mc Valuer

// Valuer is the pricing surface consumed by transport layers.
type Valuer interface {
	// Value returns the price of the contract and its standard error.
	Value(opt Option, sim Simulation) (float64, float64, error)
	// Greeks returns the finite-difference sensitivities of the contract.
	Greeks(opt Option, sim Simulation) (Greeks, error)
}

// Engine is the production Valuer backed by the least-squares Monte Carlo
// pipeline. The zero value is ready to use.
type Engine struct{}

func (Engine) Value(opt Option, sim Simulation) (float64, float64, error) {
	p, err := New(opt, sim)
	if err != nil {
		return 0, 0, err
	}
	return p.Value()
}

func (Engine) Greeks(opt Option, sim Simulation) (Greeks, error) {
	p, err := New(opt, sim)
	if err != nil {
		return Greeks{}, err
	}
	return p.Greeks()
}
