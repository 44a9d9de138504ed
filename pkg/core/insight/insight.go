// Package insight turns a computed deal analysis into a natural-language
// investment verdict via an LLM call. It consumes the numeric outputs only;
// nothing here feeds back into the projection engine.
package insight

import (
	"context"
	"fmt"
	"strings"

	"dealscope/pkg/core/agent"
	"dealscope/pkg/core/llm"
	"dealscope/pkg/core/pipeline"
)

// AgentType keys the provider/model configuration for insight generation.
const AgentType = "insight"

const systemPrompt = `You are a rental property investment analyst. You are given the
computed metrics of a residential real-estate deal. Respond ONLY with a JSON
object of this exact shape:
{
  "rating": "BUY" | "HOLD" | "PASS",
  "summary": "one paragraph overall assessment",
  "strengths": ["..."],
  "risks": ["..."],
  "recommendation": "one actionable next step"
}
Ground every statement in the supplied numbers. Do not invent figures.`

// Verdict is the parsed narrative assessment.
type Verdict struct {
	Rating         string   `json:"rating"`
	Summary        string   `json:"summary"`
	Strengths      []string `json:"strengths"`
	Risks          []string `json:"risks"`
	Recommendation string   `json:"recommendation"`
}

// Generator produces verdicts through a configured agent manager.
type Generator struct {
	mgr *agent.Manager
}

func NewGenerator(mgr *agent.Manager) *Generator {
	return &Generator{mgr: mgr}
}

// Generate builds the metric prompt, executes it and parses the response.
func (g *Generator) Generate(ctx context.Context, res *pipeline.AnalysisResult) (*Verdict, error) {
	prompt := BuildPrompt(res)
	options := llm.JSONOptions(g.mgr.ModelFor(AgentType))

	raw, err := g.mgr.ExecutePrompt(ctx, AgentType, prompt, systemPrompt, options)
	if err != nil {
		return nil, fmt.Errorf("insight generation: %w", err)
	}

	verdict, err := ParseVerdict(raw)
	if err != nil {
		return nil, fmt.Errorf("insight parse: %w", err)
	}
	return verdict, nil
}

// BuildPrompt renders the numeric subset the model is allowed to reason over.
func BuildPrompt(res *pipeline.AnalysisResult) string {
	in := res.Inputs
	y1 := res.Projections[0]
	r := res.Returns

	var b strings.Builder
	fmt.Fprintf(&b, "Purchase price: $%.0f with $%.0f down (%d-year loan at %.2f%%).\n",
		in.PurchasePrice, in.DownPayment, in.LoanTermYears, in.InterestRatePercent)
	fmt.Fprintf(&b, "Gross scheduled rent: $%.0f/month. Hold period: %d years.\n",
		in.GrossMonthlyRent(), in.Growth.ProjectionYears)
	fmt.Fprintf(&b, "Year-1 NOI: $%.0f. Year-1 cash flow: $%.0f.\n", y1.NOI, y1.CashFlow)
	fmt.Fprintf(&b, "Cap rate: %.2f%%. Cash-on-cash: %.2f%%. DSCR: %.2f.\n",
		r.CapRatePercent, r.CashOnCashPercent, r.DSCR)
	fmt.Fprintf(&b, "Projected IRR: %.2f%%", r.IRRPercent)
	if !r.IRRConverged {
		b.WriteString(" (approximate, solver did not fully converge)")
	}
	b.WriteString(".\n")
	fmt.Fprintf(&b, "Equity multiple: %.2fx. Total return over hold: $%.0f.\n",
		r.EquityMultiple, r.TotalReturn)
	fmt.Fprintf(&b, "Exit: sale at $%.0f, net proceeds $%.0f after %.1f%% selling costs.\n",
		res.Exit.SalePrice, res.Exit.NetProceedsFromSale, in.Growth.SellingCostsPercent)
	return b.String()
}
