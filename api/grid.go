package api

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/banachtech/painted-wolf/mc"
	"github.com/banachtech/painted-wolf/payoff"
	"github.com/gin-gonic/gin"
	"github.com/montanaflynn/stats"
	"golang.org/x/time/rate"
)

// Gridlimiters holds one rate limiter per API key prefix.
var Gridlimiters = make(map[string]*rate.Limiter)

var gridMu sync.Mutex

// Grid sweeps are the expensive endpoint, so cap both the request rate and
// the sweep size.
const maxGridCells = 200

func getGridLimiter(prefix string) *rate.Limiter {
	gridMu.Lock()
	defer gridMu.Unlock()
	limiter, ok := Gridlimiters[prefix]
	if !ok {
		// One request per second with a burst of two
		limiter = rate.NewLimiter(rate.Every(time.Second), 2)
		Gridlimiters[prefix] = limiter
	}
	return limiter
}

type gridRequest struct {
	Kind          string    `json:"kind" binding:"required"`
	Spots         []float64 `json:"spots" binding:"required"`
	Strike        float64   `json:"strike"`
	Maturities    []float64 `json:"maturities" binding:"required"`
	Rate          float64   `json:"rate"`
	Dividend      float64   `json:"dividend"`
	Volatilities  []float64 `json:"volatilities" binding:"required"`
	Steps         int       `json:"steps"`
	Paths         int       `json:"paths"`
	Seed          uint64    `json:"seed"`
	DividendDrift bool      `json:"dividend_drift"`
	ITMOnly       bool      `json:"itm_only"`
}

type gridCell struct {
	Spot       float64 `json:"spot"`
	Volatility float64 `json:"volatility"`
	Maturity   float64 `json:"maturity"`
	Price      float64 `json:"price"`
	StdError   float64 `json:"std_error"`
}

func (server *Server) grid(c *gin.Context) {
	prefix, exists := c.Get(prefixKey)
	if !exists {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "msg": "Authentication Error"})
		return
	}

	limiter := getGridLimiter(prefix.(string))
	if !limiter.Allow() {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"status": http.StatusTooManyRequests, "msg": "Too Many Requests"})
		return
	}

	var req gridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	kind, err := payoff.ParseKind(req.Kind)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	n := len(req.Spots) * len(req.Volatilities) * len(req.Maturities)
	if n == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "msg": "Error JSON binding, please check your JSON input"})
		return
	}
	if n > maxGridCells {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "msg": fmt.Sprintf("grid of %d cells exceeds the limit of %d", n, maxGridCells)})
		return
	}

	sim := mc.Simulation{
		Steps:         req.Steps,
		Paths:         req.Paths,
		Seed:          req.Seed,
		DividendDrift: req.DividendDrift,
		ITMOnly:       req.ITMOnly,
	}
	server.fill(&sim)

	cells := make([]gridCell, 0, n)
	for _, s := range req.Spots {
		for _, v := range req.Volatilities {
			for _, m := range req.Maturities {
				cells = append(cells, gridCell{Spot: s, Volatility: v, Maturity: m})
			}
		}
	}

	// Price the cells concurrently; every cell is its own seeded run
	var wg sync.WaitGroup
	errCh := make(chan error, n)
	for i := range cells {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			opt := mc.Option{
				Kind:     kind,
				Spot:     cells[i].Spot,
				Strike:   req.Strike,
				Maturity: cells[i].Maturity,
				Rate:     req.Rate,
				Dividend: req.Dividend,
				Vol:      cells[i].Volatility,
			}
			p, se, err := server.engine.Value(opt, sim)
			if err != nil {
				errCh <- err
				return
			}
			cells[i].Price = p
			cells[i].StdError = se
			errCh <- nil
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			c.AbortWithStatusJSON(statusFor(err), errorResponse(err))
			return
		}
	}

	prices := make([]float64, n)
	for i := range cells {
		prices[i] = cells[i].Price
	}
	min, _ := stats.Min(prices)
	mean, _ := stats.Mean(prices)
	max, _ := stats.Max(prices)

	c.JSON(http.StatusOK, gin.H{"results": cells, "min": min, "mean": mean, "max": max})
}
