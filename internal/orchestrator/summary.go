package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cityline/internal/domain"
	"cityline/internal/llm"
)

const summarySystem = "You are an expert at analyzing technical discussions. Always respond with valid JSON only."

// Summarize condenses a project's communication log into a structured debate
// summary. It never fails: an empty log yields a placeholder without calling
// the model, and any model or parse error yields a fixed failure summary.
func (o *Orchestrator) Summarize(ctx context.Context, projectID int64) domain.DebateSummary {
	logs, err := o.Repo.ListLogs(ctx, projectID)
	if err != nil || len(logs) == 0 {
		if err != nil {
			o.logger.Printf("[orchestrator] project %d summary: reading log: %v", projectID, err)
		}
		return domain.DebateSummary{
			KeyArguments:  []domain.RoleArgument{},
			Agreements:    []string{},
			Disagreements: []string{},
			Conclusion:    "No debate data available yet.",
		}
	}

	// Logs read newest-first; the transcript is built in conversation order.
	var b strings.Builder
	for i := len(logs) - 1; i >= 0; i-- {
		e := logs[i]
		fmt.Fprintf(&b, "%s to %s: %s\n", e.From, e.To, e.Message)
	}

	raw, err := o.LLM.Complete(ctx, []llm.Message{
		{Role: "system", Content: summarySystem},
		{Role: "user", Content: summaryPrompt(b.String())},
	})
	if err != nil {
		o.logger.Printf("[orchestrator] project %d summary: completion: %v", projectID, err)
		return failedSummary()
	}

	var out domain.DebateSummary
	if err := json.Unmarshal([]byte(llm.ExtractJSON(raw)), &out); err != nil {
		o.logger.Printf("[orchestrator] project %d summary: parse: %v", projectID, err)
		return failedSummary()
	}
	if out.KeyArguments == nil {
		out.KeyArguments = []domain.RoleArgument{}
	}
	if out.Agreements == nil {
		out.Agreements = []string{}
	}
	if out.Disagreements == nil {
		out.Disagreements = []string{}
	}
	return out
}

func failedSummary() domain.DebateSummary {
	return domain.DebateSummary{
		KeyArguments:  []domain.RoleArgument{},
		Agreements:    []string{},
		Disagreements: []string{},
		Conclusion:    "Failed to generate summary.",
	}
}

func summaryPrompt(transcript string) string {
	return fmt.Sprintf(`Analyze this AI team debate and provide a structured summary:

%s

Provide a JSON response with this structure:
{
  "keyArguments": [{"llm": "LLM name", "argument": "main point"}],
  "agreements": ["point of agreement"],
  "disagreements": ["point of discussion or debate"],
  "conclusion": "final consensus reached by the team"
}

Focus on technical decisions, architecture choices, and implementation strategies.`, transcript)
}
