package insight

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// ParseVerdict extracts a Verdict from raw model output. Models wrap JSON in
// code fences or emit slightly malformed JSON often enough that a strict
// unmarshal alone is not usable; the fallback chain is strict JSON, then
// json-repair, then HJSON.
func ParseVerdict(raw string) (*Verdict, error) {
	cleaned := stripFences(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("empty model response")
	}

	var v Verdict
	if err := json.Unmarshal([]byte(cleaned), &v); err == nil {
		return validated(&v)
	}

	if repaired, err := jsonrepair.RepairJSON(cleaned); err == nil {
		if err := json.Unmarshal([]byte(repaired), &v); err == nil {
			return validated(&v)
		}
	}

	var loose map[string]interface{}
	if err := hjson.Unmarshal([]byte(cleaned), &loose); err != nil {
		return nil, fmt.Errorf("unparseable model response: %w", err)
	}
	relaxed, err := json.Marshal(loose)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(relaxed, &v); err != nil {
		return nil, fmt.Errorf("unparseable model response: %w", err)
	}
	return validated(&v)
}

func validated(v *Verdict) (*Verdict, error) {
	v.Rating = strings.ToUpper(strings.TrimSpace(v.Rating))
	switch v.Rating {
	case "BUY", "HOLD", "PASS":
	default:
		return nil, fmt.Errorf("unexpected rating %q", v.Rating)
	}
	if v.Summary == "" {
		return nil, fmt.Errorf("verdict missing summary")
	}
	return v, nil
}

// stripFences removes an outer markdown code block, fenced as ```json or
// bare ```, which chat models add despite JSON-mode instructions.
func stripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}
