package report

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"dealscope/pkg/core/pipeline"
	"dealscope/pkg/core/proforma"
	"dealscope/pkg/models"
)

func dealFixture(t *testing.T) *models.Deal {
	t.Helper()
	res, err := pipeline.Run(&proforma.PropertyInputs{
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
	})
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	return &models.Deal{
		ID:       uuid.New(),
		Name:     "Maple Street Duplex",
		Address:  "112 Maple St",
		Analysis: res,
	}
}

func TestMarkdownSections(t *testing.T) {
	md := Markdown(dealFixture(t))

	for _, want := range []string{
		"# Maple Street Duplex",
		"## Purchase",
		"## Yearly Projection",
		"## Exit",
		"## Returns",
		"| Year |",
		"Net proceeds from sale",
		"Equity multiple",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q", want)
		}
	}

	// One table row per projection year.
	if got := strings.Count(md, "\n| 1 |"); got != 1 {
		t.Errorf("Expected exactly one year-1 row, got %d", got)
	}
	if !strings.Contains(md, "\n| 10 |") {
		t.Error("Expected a year-10 row")
	}
}

func TestHTMLRendersTable(t *testing.T) {
	html, err := HTML(dealFixture(t))
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Error("Expected a rendered table in HTML output")
	}
	if !strings.Contains(html, "<h1>") {
		t.Error("Expected a rendered title in HTML output")
	}
}

func TestMoneyFormatting(t *testing.T) {
	cases := map[float64]string{
		0:          "$0",
		999:        "$999",
		1000:       "$1,000",
		300000:     "$300,000",
		1234567.49: "$1,234,567",
		-2500:      "($2,500)",
	}
	for in, want := range cases {
		if got := money(in); got != want {
			t.Errorf("money(%f) = %q, want %q", in, got, want)
		}
	}
}
