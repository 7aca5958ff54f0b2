package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/banachtech/painted-wolf/mc"
	mockmc "github.com/banachtech/painted-wolf/mc/mock"
	"github.com/banachtech/painted-wolf/payoff"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func referenceBody() gin.H {
	return gin.H{
		"kind":       "put",
		"spot":       36.0,
		"strike":     40.0,
		"maturity":   1.0,
		"rate":       0.06,
		"dividend":   0.06,
		"volatility": 0.2,
	}
}

func TestPriceAPI(t *testing.T) {
	prefix, apiKey, hash := newTestKey(t)
	keys := map[string]string{prefix: hash}

	opt := mc.Option{Kind: payoff.Put, Spot: 36.0, Strike: 40.0, Maturity: 1.0, Rate: 0.06, Dividend: 0.06, Vol: 0.2}
	defaultSim := mc.Simulation{Steps: 50, Paths: 2000, Seed: 123}
	customSim := mc.Simulation{Steps: 10, Paths: 500, Seed: 7, DividendDrift: true, ITMOnly: true}

	customBody := referenceBody()
	customBody["steps"] = 10
	customBody["paths"] = 500
	customBody["seed"] = 7
	customBody["dividend_drift"] = true
	customBody["itm_only"] = true

	missingKind := referenceBody()
	delete(missingKind, "kind")

	unknownKind := referenceBody()
	unknownKind["kind"] = "butterfly"

	testCases := []struct {
		name          string
		body          gin.H
		buildStubs    func(engine *mockmc.MockValuer)
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name: "OK",
			body: referenceBody(),
			buildStubs: func(engine *mockmc.MockValuer) {
				engine.EXPECT().Value(gomock.Eq(opt), gomock.Eq(defaultSim)).Times(1).Return(4.47, 0.04, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				var got struct {
					Contract mc.Option `json:"contract"`
					Price    float64   `json:"price"`
					StdError float64   `json:"std_error"`
				}
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
				// The echoed contract spells the kind the way the request did
				require.Contains(t, recorder.Body.String(), `"kind":"put"`)
				require.Equal(t, opt, got.Contract)
				require.Equal(t, 4.47, got.Price)
				require.Equal(t, 0.04, got.StdError)
			},
		},
		{
			name: "EXPLICIT_SIMULATION",
			body: customBody,
			buildStubs: func(engine *mockmc.MockValuer) {
				engine.EXPECT().Value(gomock.Eq(opt), gomock.Eq(customSim)).Times(1).Return(1.0, 0.01, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
			},
		},
		{
			name: "MISSING_KIND",
			body: missingKind,
			buildStubs: func(engine *mockmc.MockValuer) {
				engine.EXPECT().Value(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "UNKNOWN_KIND",
			body: unknownKind,
			buildStubs: func(engine *mockmc.MockValuer) {
				engine.EXPECT().Value(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "INVALID_INPUTS",
			body: referenceBody(),
			buildStubs: func(engine *mockmc.MockValuer) {
				engine.EXPECT().Value(gomock.Any(), gomock.Any()).Times(1).Return(0.0, 0.0, fmt.Errorf("%w: volatility 0 must be positive", mc.ErrInvalidInputs))
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "SINGULAR_FIT",
			body: referenceBody(),
			buildStubs: func(engine *mockmc.MockValuer) {
				engine.EXPECT().Value(gomock.Any(), gomock.Any()).Times(1).Return(0.0, 0.0, fmt.Errorf("step 3: %w", mc.ErrSingularFit))
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
			},
		},
		{
			name: "INTERNAL_SERVER_ERROR",
			body: referenceBody(),
			buildStubs: func(engine *mockmc.MockValuer) {
				engine.EXPECT().Value(gomock.Any(), gomock.Any()).Times(1).Return(0.0, 0.0, errors.New("engine down"))
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusInternalServerError, recorder.Code)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			engine := mockmc.NewMockValuer(ctrl)
			tc.buildStubs(engine)

			server := newTestServer(engine, keys)
			recorder := httptest.NewRecorder()

			// Marshal body data to JSON
			data, err := json.Marshal(tc.body)
			require.NoError(t, err)

			url := "/v1/price"
			request, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
			require.NoError(t, err)

			request.Header.Set(authorizationHeaderKey, fmt.Sprintf("%s %s", authorizationTypeBearer, apiKey))
			server.router.ServeHTTP(recorder, request)
			tc.checkResponse(t, recorder)
		})
	}
}

func TestGreeksAPI(t *testing.T) {
	prefix, apiKey, hash := newTestKey(t)
	keys := map[string]string{prefix: hash}

	opt := mc.Option{Kind: payoff.Put, Spot: 36.0, Strike: 40.0, Maturity: 1.0, Rate: 0.06, Dividend: 0.06, Vol: 0.2}
	defaultSim := mc.Simulation{Steps: 50, Paths: 2000, Seed: 123}
	greeks := mc.Greeks{Delta: -0.71, Gamma: 0.126, Vega: 12.2, Rho: -10.0, Theta: -1.83}

	testCases := []struct {
		name          string
		body          gin.H
		buildStubs    func(engine *mockmc.MockValuer)
		checkResponse func(t *testing.T, recorder *httptest.ResponseRecorder)
	}{
		{
			name: "OK",
			body: referenceBody(),
			buildStubs: func(engine *mockmc.MockValuer) {
				engine.EXPECT().Value(gomock.Eq(opt), gomock.Eq(defaultSim)).Times(1).Return(4.47, 0.04, nil)
				engine.EXPECT().Greeks(gomock.Eq(opt), gomock.Eq(defaultSim)).Times(1).Return(greeks, nil)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)
				var got struct {
					Price  float64   `json:"price"`
					Greeks mc.Greeks `json:"greeks"`
				}
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
				require.Equal(t, 4.47, got.Price)
				require.Equal(t, greeks, got.Greeks)
			},
		},
		{
			name: "GREEKS_ERROR",
			body: referenceBody(),
			buildStubs: func(engine *mockmc.MockValuer) {
				engine.EXPECT().Value(gomock.Any(), gomock.Any()).Times(1).Return(4.47, 0.04, nil)
				engine.EXPECT().Greeks(gomock.Any(), gomock.Any()).Times(1).Return(mc.Greeks{}, fmt.Errorf("%w: zero rate leaves no bump for rho", mc.ErrInvalidInputs))
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "VALUE_ERROR",
			body: referenceBody(),
			buildStubs: func(engine *mockmc.MockValuer) {
				engine.EXPECT().Value(gomock.Any(), gomock.Any()).Times(1).Return(0.0, 0.0, fmt.Errorf("step 1: %w", mc.ErrSingularFit))
				engine.EXPECT().Greeks(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			engine := mockmc.NewMockValuer(ctrl)
			tc.buildStubs(engine)

			server := newTestServer(engine, keys)
			recorder := httptest.NewRecorder()

			// Marshal body data to JSON
			data, err := json.Marshal(tc.body)
			require.NoError(t, err)

			url := "/v1/greeks"
			request, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
			require.NoError(t, err)

			request.Header.Set(authorizationHeaderKey, fmt.Sprintf("%s %s", authorizationTypeBearer, apiKey))
			server.router.ServeHTTP(recorder, request)
			tc.checkResponse(t, recorder)
		})
	}
}
