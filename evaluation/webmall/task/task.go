// Package task drives one benchmark task instance: it builds the checklist
// at construction and scores every agent step against it.
package task

import (
	"context"
	"fmt"
	"strings"

	"webmall/evaluation/webmall/checklist"
	"webmall/evaluation/webmall/evaluator"
	"webmall/evaluation/webmall/shops"
	"webmall/evaluation/webmall/taskspec"
	"webmall/internal/logging"
)

// Task is one running instance of a benchmark task. It is driven by a single
// control loop; callers serialize Setup and Validate.
type Task struct {
	spec     taskspec.Spec
	urls     shops.URLs
	list     *checklist.Checklist
	composer *evaluator.Composer
	cfg      config
	logger   logging.Logger
}

// New resolves the checklist for spec. Authoring defects in the spec, the
// shop URLs or the policy are returned as config errors.
func New(spec taskspec.Spec, urls shops.URLs, opts ...Option) (*Task, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	logger := cfg.logger
	if logging.IsNil(logger) {
		logger = logging.NewComponentLogger("Task")
	}

	list, err := checklist.Build(spec, urls, cfg.policy)
	if err != nil {
		logger.Error("task %s: build checklist: %v", spec.ID, err)
		return nil, fmt.Errorf("task %s: %w", spec.ID, err)
	}

	composer := cfg.composer
	if composer == nil {
		evalOpts := cfg.evalOptions
		evalOpts.FrontendURL = urls.Frontend()
		if logging.IsNil(evalOpts.Logger) {
			evalOpts.Logger = logger
		}
		composer = evaluator.NewComposer(evalOpts)
	}
	if _, err := composer.Route(list); err != nil {
		logger.Error("task %s: %v", spec.ID, err)
		return nil, fmt.Errorf("task %s: %w", spec.ID, err)
	}

	logger.Debug("task %s: %d checkpoints, policy %s", spec.ID, list.Len(), cfg.policy.Name)
	return &Task{
		spec:     spec,
		urls:     urls,
		list:     list,
		composer: composer,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// ID returns the task id.
func (t *Task) ID() string { return t.spec.ID }

// Spec returns the task specification.
func (t *Task) Spec() taskspec.Spec { return t.spec }

// Checklist exposes the live checklist.
func (t *Task) Checklist() *checklist.Checklist { return t.list }

// StartURL is the benchmark entry page.
func (t *Task) StartURL() string { return t.urls.Frontend() }

// Instruction returns the task text with shop placeholders resolved.
func (t *Task) Instruction() string {
	text := t.spec.Task
	if strings.TrimSpace(text) == "" {
		text = t.spec.Instruction
	}
	return t.urls.Substitute(text)
}

// Setup navigates to the entry URL and returns the instruction for the agent.
func (t *Task) Setup(ctx context.Context) (string, map[string]any, error) {
	ctx, span := startSpan(ctx, traceSpanSetup, t.spec.ID)
	var err error
	defer func() {
		markSpanResult(span, err)
		span.End()
	}()

	navCtx, cancel := context.WithTimeout(ctx, t.cfg.setupTimeout)
	defer cancel()
	if err = t.cfg.navigator.Navigate(navCtx, t.StartURL()); err != nil {
		err = fmt.Errorf("navigate to %s: %w", t.StartURL(), err)
		t.logger.Warn("task %s setup: %v", t.spec.ID, err)
		return "", nil, err
	}

	meta := map[string]any{
		"task_id":          t.spec.ID,
		"category":         t.spec.Category,
		"start_url":        t.StartURL(),
		"weighting":        t.cfg.policy.Name,
		"checklist_size":   t.list.Len(),
		"max_score":        t.list.MaxScore(),
		"completion_token": t.cfg.completionToken,
	}
	t.logger.Info("task %s ready at %s", t.spec.ID, t.StartURL())
	return t.Instruction(), meta, nil
}

// Validate scores one agent step. Only the last chat message is consulted.
func (t *Task) Validate(ctx context.Context, page *evaluator.PageSnapshot, chat []ChatMessage) (StepResult, error) {
	ctx, span := startSpan(ctx, traceSpanValidate, t.spec.ID)
	var err error
	defer func() {
		markSpanResult(span, err)
		span.End()
	}()
	if err = ctx.Err(); err != nil {
		return StepResult{}, err
	}

	answer, infeasible := lastAnswer(chat)
	before := t.list.Flags()

	var outcome evaluator.Outcome
	outcome, err = t.composer.Score(answer, page, t.list)
	if err != nil {
		return StepResult{}, fmt.Errorf("task %s: %w", t.spec.ID, err)
	}

	done := outcome.Done || infeasible || t.hasCompletionToken(answer)
	result := StepResult{
		Score:   outcome.Delta,
		Done:    done,
		Message: stepMessage(done, infeasible, t.list),
		Detail: Detail{
			Checklist:             t.list.Records(),
			ReachedDuringThisStep: t.list.NewlySatisfied(before),
			WrongSolutions:        nonNil(outcome.Wrong),
			TotalScore:            t.list.TotalScore(),
			MaxScore:              t.list.MaxScore(),
		},
	}

	span.SetAttributes(stepAttributes(result)...)
	t.cfg.recorder.RecordStep(t.spec.ID, result)
	t.logger.Debug("task %s step: delta=%.4f total=%.4f done=%t", t.spec.ID, result.Score, result.Detail.TotalScore, result.Done)
	return result, nil
}

func (t *Task) hasCompletionToken(answer string) bool {
	return t.cfg.completionToken != "" && strings.Contains(answer, t.cfg.completionToken)
}

// lastAnswer maps the final chat entry to the answer the evaluators see.
func lastAnswer(chat []ChatMessage) (string, bool) {
	if len(chat) == 0 {
		return "", false
	}
	last := chat[len(chat)-1]
	switch last.Role {
	case RoleAssistant:
		return last.Message, false
	case RoleInfeasible:
		return InfeasibleAnswer, true
	default:
		return "", false
	}
}

func stepMessage(done, infeasible bool, list *checklist.Checklist) string {
	switch {
	case infeasible:
		return "task declared infeasible"
	case done && list.AllCompleted():
		return "all checkpoints reached"
	case done:
		return "final answer submitted"
	default:
		return ""
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
