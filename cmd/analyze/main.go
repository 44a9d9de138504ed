// Command analyze runs one deal through the projection pipeline from the
// terminal and prints the report, without needing the API or a database.
//
// Usage:
//
//	analyze                 # built-in sample deal
//	analyze -input deal.json
//	analyze -input deal.json -json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"dealscope/pkg/core/pipeline"
	"dealscope/pkg/core/proforma"
	"dealscope/pkg/core/report"
	"dealscope/pkg/models"
)

func main() {
	godotenv.Load()

	inputPath := flag.String("input", "", "path to a PropertyInputs JSON file (default: built-in sample)")
	asJSON := flag.Bool("json", false, "emit the raw analysis result as JSON instead of a report")
	name := flag.String("name", "Sample Deal", "deal name for the report header")
	flag.Parse()

	inputs := sampleInputs()
	if *inputPath != "" {
		data, err := os.ReadFile(*inputPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read %s: %v\n", *inputPath, err)
			os.Exit(1)
		}
		inputs = &proforma.PropertyInputs{}
		if err := json.Unmarshal(data, inputs); err != nil {
			fmt.Fprintf(os.Stderr, "parse %s: %v\n", *inputPath, err)
			os.Exit(1)
		}
	}

	result, err := pipeline.Run(inputs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "encode: %v\n", err)
			os.Exit(1)
		}
		return
	}

	deal := &models.Deal{ID: uuid.New(), Name: *name, Analysis: result}
	fmt.Print(report.Markdown(deal))
}

func sampleInputs() *proforma.PropertyInputs {
	return &proforma.PropertyInputs{
		PurchasePrice:          300000,
		DownPayment:            60000,
		InterestRatePercent:    6.0,
		LoanTermYears:          30,
		MonthlyRent:            2000,
		PropertyTaxRatePercent: 1.2,
		InsuranceRatePercent:   0.5,
		ManagementFeePercent:   8,
		ClosingCosts:           6000,
		Growth: proforma.GrowthAssumptions{
			ProjectionYears:     10,
			RentGrowthPercent:   2,
			AppreciationPercent: 3,
			InflationPercent:    2,
			VacancyPercent:      5,
			SellingCostsPercent: 6,
		},
	}
}
