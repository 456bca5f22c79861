package plan

import (
	"encoding/json"
	"errors"
	"fmt"

	"cityline/internal/llm"
)

// ErrNoPlan is returned when no schema-shaped plan can be extracted from a
// model response. Callers substitute the fallback plan instead of surfacing
// this to the user.
var ErrNoPlan = errors.New("no plan found in response")

// Parse extracts a plan from raw model output. It tolerates surrounding
// prose and markdown fencing but never returns a partial plan: either the
// decoded object has the minimal shape (ordered phases, each with buildings
// carrying name and type) or the result is ErrNoPlan.
func Parse(raw string) (Plan, error) {
	jsonStr := llm.ExtractJSON(raw)
	if jsonStr == "" {
		return Plan{}, fmt.Errorf("%w: no JSON object in response", ErrNoPlan)
	}
	var p Plan
	if err := json.Unmarshal([]byte(jsonStr), &p); err != nil {
		return Plan{}, fmt.Errorf("%w: %v", ErrNoPlan, err)
	}
	if len(p.Phases) == 0 {
		return Plan{}, fmt.Errorf("%w: no phases", ErrNoPlan)
	}
	for i, ph := range p.Phases {
		if len(ph.Buildings) == 0 {
			return Plan{}, fmt.Errorf("%w: phase %d has no buildings", ErrNoPlan, i+1)
		}
		for _, b := range ph.Buildings {
			if b.Name == "" || b.Type == "" {
				return Plan{}, fmt.Errorf("%w: phase %d has a building missing name or type", ErrNoPlan, i+1)
			}
		}
	}
	return p, nil
}
