package payoff

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Kind selects the direction of a vanilla payoff.
type Kind int

const (
	Call Kind = iota + 1
	Put
)

func (k Kind) String() string {
	switch k {
	case Call:
		return "call"
	case Put:
		return "put"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps the wire spelling of an option kind to its Kind value.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	}
	return 0, fmt.Errorf("unknown option kind %q", s)
}

// MarshalJSON writes the same spelling ParseKind reads, so contracts echo
// back the way they came in.
func (k Kind) MarshalJSON() ([]byte, error) {
	if k != Call && k != Put {
		return nil, fmt.Errorf("unknown option kind %v", int(k))
	}
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Vanilla is a plain call or put on a single underlying.
type Vanilla struct {
	Kind   Kind
	Strike float64
}

func NewVanilla(kind Kind, strike float64) (Vanilla, error) {
	if kind != Call && kind != Put {
		return Vanilla{}, fmt.Errorf("unknown option kind %v", kind)
	}
	if strike < 0 {
		return Vanilla{}, fmt.Errorf("negative strike %v", strike)
	}
	return Vanilla{Kind: kind, Strike: strike}, nil
}

// Value is the exercise value of the option at underlying price s.
func (v Vanilla) Value(s float64) float64 {
	if v.Kind == Call {
		return math.Max(s-v.Strike, 0)
	}
	return math.Max(v.Strike-s, 0)
}

// Matrix evaluates the exercise value entrywise on a matrix of simulated
// prices, one row per time step and one column per path.
func (v Vanilla) Matrix(prices *mat.Dense) *mat.Dense {
	r, c := prices.Dims()
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		src := prices.RawRowView(i)
		dst := out.RawRowView(i)
		for j, s := range src {
			dst[j] = v.Value(s)
		}
	}
	return out
}
