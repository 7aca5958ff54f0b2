package api

import (
	"errors"
	"net/http"

	"github.com/banachtech/painted-wolf/mc"
	"github.com/banachtech/painted-wolf/payoff"
	"github.com/gin-gonic/gin"
)

type priceRequest struct {
	Kind          string  `json:"kind" binding:"required"`
	Spot          float64 `json:"spot"`
	Strike        float64 `json:"strike"`
	Maturity      float64 `json:"maturity"`
	Rate          float64 `json:"rate"`
	Dividend      float64 `json:"dividend"`
	Volatility    float64 `json:"volatility"`
	Steps         int     `json:"steps"`
	Paths         int     `json:"paths"`
	Seed          uint64  `json:"seed"`
	DividendDrift bool    `json:"dividend_drift"`
	ITMOnly       bool    `json:"itm_only"`
}

// contract converts a request into engine inputs, filling unset simulation
// settings from the service configuration.
func (server *Server) contract(req priceRequest) (mc.Option, mc.Simulation, error) {
	kind, err := payoff.ParseKind(req.Kind)
	if err != nil {
		return mc.Option{}, mc.Simulation{}, err
	}
	opt := mc.Option{
		Kind:     kind,
		Spot:     req.Spot,
		Strike:   req.Strike,
		Maturity: req.Maturity,
		Rate:     req.Rate,
		Dividend: req.Dividend,
		Vol:      req.Volatility,
	}
	sim := mc.Simulation{
		Steps:         req.Steps,
		Paths:         req.Paths,
		Seed:          req.Seed,
		DividendDrift: req.DividendDrift,
		ITMOnly:       req.ITMOnly,
	}
	server.fill(&sim)
	return opt, sim, nil
}

func (server *Server) fill(sim *mc.Simulation) {
	if sim.Steps == 0 {
		sim.Steps = server.cfg.Steps
	}
	if sim.Paths == 0 {
		sim.Paths = server.cfg.Paths
	}
	if sim.Seed == 0 {
		sim.Seed = server.cfg.Seed
	}
}

// statusFor maps engine failures onto HTTP statuses. Bad parameters are the
// caller's fault; a singular fit is a well formed request the solver could
// not serve at these settings.
func statusFor(err error) int {
	switch {
	case errors.Is(err, mc.ErrInvalidInputs):
		return http.StatusBadRequest
	case errors.Is(err, mc.ErrSingularFit):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (server *Server) price(c *gin.Context) {
	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	opt, sim, err := server.contract(req)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	price, stderr, err := server.engine.Value(opt, sim)
	if err != nil {
		c.AbortWithStatusJSON(statusFor(err), errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"contract": opt, "simulation": sim, "price": price, "std_error": stderr})
}

func (server *Server) greeks(c *gin.Context) {
	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	opt, sim, err := server.contract(req)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err))
		return
	}

	price, stderr, err := server.engine.Value(opt, sim)
	if err != nil {
		c.AbortWithStatusJSON(statusFor(err), errorResponse(err))
		return
	}

	greeks, err := server.engine.Greeks(opt, sim)
	if err != nil {
		c.AbortWithStatusJSON(statusFor(err), errorResponse(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"contract": opt, "simulation": sim, "price": price, "std_error": stderr, "greeks": greeks})
}
