package analysis

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealscope/pkg/core/proforma"
	"dealscope/pkg/models"
)

func runRequestBody(t *testing.T, mutate func(*RunRequest)) *bytes.Buffer {
	t.Helper()
	req := RunRequest{
		Name:    "Maple Street SFR",
		Address: "112 Maple St",
		Inputs: proforma.PropertyInputs{
			PurchasePrice:          300000,
			DownPayment:            60000,
			InterestRatePercent:    6.0,
			LoanTermYears:          30,
			MonthlyRent:            2000,
			PropertyTaxRatePercent: 1.2,
			InsuranceRatePercent:   0.5,
			ManagementFeePercent:   8,
			Growth: proforma.GrowthAssumptions{
				ProjectionYears:     10,
				RentGrowthPercent:   2,
				AppreciationPercent: 3,
				InflationPercent:    2,
				VacancyPercent:      5,
				SellingCostsPercent: 6,
			},
		},
	}
	if mutate != nil {
		mutate(&req)
	}
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestHandleRunSuccess(t *testing.T) {
	h := NewHandler(nil, nil) // no persistence: analysis still returned

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analysis/run", runRequestBody(t, nil))
	h.HandleRun(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var deal models.Deal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deal))
	require.NotNil(t, deal.Analysis)

	assert.Equal(t, "Maple Street SFR", deal.Name)
	assert.Len(t, deal.Analysis.Projections, 10)
	assert.InDelta(t, 1438.92, deal.Analysis.Loan.MonthlyPayment, 0.01)
	assert.True(t, deal.Analysis.Returns.IRRConverged)

	// Exit identity survives the JSON round trip.
	exit := deal.Analysis.Exit
	assert.InDelta(t, exit.SalePrice-exit.SellingCosts-exit.MortgagePayoff, exit.NetProceedsFromSale, 1e-6)
}

func TestHandleRunRejectsInvalidJSON(t *testing.T) {
	h := NewHandler(nil, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analysis/run", bytes.NewBufferString("{not json"))
	h.HandleRun(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRunRejectsMissingName(t *testing.T) {
	h := NewHandler(nil, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analysis/run",
		runRequestBody(t, func(r *RunRequest) { r.Name = "" }))
	h.HandleRun(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRunRejectsDomainErrors(t *testing.T) {
	h := NewHandler(nil, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analysis/run",
		runRequestBody(t, func(r *RunRequest) { r.Inputs.DownPayment = r.Inputs.PurchasePrice + 1 }))
	h.HandleRun(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "down_payment")
}

func TestReadEndpointsWithoutPersistence(t *testing.T) {
	h := NewHandler(nil, nil)

	rec := httptest.NewRecorder()
	h.HandleList(rec, httptest.NewRequest(http.MethodGet, "/api/analysis", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
