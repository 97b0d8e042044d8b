package task

import (
	"context"

	"webmall/evaluation/webmall/checklist"
)

// Chat roles consulted by Validate.
const (
	RoleUser       = "user"
	RoleAssistant  = "assistant"
	RoleInfeasible = "infeasible"
)

// InfeasibleAnswer stands in for the final answer when the agent gives up.
const InfeasibleAnswer = "N/A"

// DefaultCompletionToken ends a task when it appears in the agent's answer.
const DefaultCompletionToken = "[DONE]"

// ChatMessage is one role-tagged entry of the agent conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

// StepResult is returned from every Validate call.
type StepResult struct {
	Score   float64 `json:"score"`
	Done    bool    `json:"done"`
	Message string  `json:"message"`
	Detail  Detail  `json:"detail"`
}

// Detail carries the diagnostics of one step.
type Detail struct {
	Checklist             []checklist.Record `json:"checklist"`
	ReachedDuringThisStep []checklist.Record `json:"reached_during_this_step"`
	WrongSolutions        []string           `json:"wrong_solutions"`
	TotalScore            float64            `json:"total_score"`
	MaxScore              float64            `json:"max_score"`
}

// Navigator drives the browser to a URL. Implementations own page-load
// timeouts and retries.
type Navigator interface {
	Navigate(ctx context.Context, url string) error
}

// NopNavigator is used when the caller positions the browser itself.
type NopNavigator struct{}

func (NopNavigator) Navigate(context.Context, string) error { return nil }

// Recorder observes completed steps, e.g. for metrics export.
type Recorder interface {
	RecordStep(taskID string, result StepResult)
}

type nopRecorder struct{}

func (nopRecorder) RecordStep(string, StepResult) {}
