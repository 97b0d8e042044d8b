package task

import (
	"time"

	"webmall/evaluation/webmall/checklist"
	"webmall/evaluation/webmall/evaluator"
	"webmall/internal/logging"
)

const defaultSetupTimeout = 10 * time.Second

type config struct {
	policy          checklist.WeightPolicy
	navigator       Navigator
	recorder        Recorder
	logger          logging.Logger
	completionToken string
	setupTimeout    time.Duration
	evalOptions     evaluator.Options
	composer        *evaluator.Composer
}

func defaultConfig() config {
	return config{
		policy:          checklist.DefaultPolicy(),
		navigator:       NopNavigator{},
		recorder:        nopRecorder{},
		completionToken: DefaultCompletionToken,
		setupTimeout:    defaultSetupTimeout,
		evalOptions:     evaluator.DefaultOptions(),
	}
}

// Option customizes a Task.
type Option func(*config)

// WithPolicy selects the weighting policy for the checklist.
func WithPolicy(p checklist.WeightPolicy) Option {
	return func(c *config) { c.policy = p }
}

// WithNavigator sets the browser collaborator used by Setup.
func WithNavigator(n Navigator) Option {
	return func(c *config) {
		if n != nil {
			c.navigator = n
		}
	}
}

// WithRecorder registers a step observer.
func WithRecorder(r Recorder) Option {
	return func(c *config) {
		if r != nil {
			c.recorder = r
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithCompletionToken overrides the answer token that ends a task. An empty
// token disables the check.
func WithCompletionToken(token string) Option {
	return func(c *config) { c.completionToken = token }
}

// WithSetupTimeout bounds the navigation performed by Setup.
func WithSetupTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.setupTimeout = d
		}
	}
}

// WithEvaluatorOptions tunes the detection selectors. The frontend URL is
// always taken from the shop URLs.
func WithEvaluatorOptions(o evaluator.Options) Option {
	return func(c *config) { c.evalOptions = o }
}

// WithComposer replaces the evaluator composer, e.g. to register extra types.
func WithComposer(composer *evaluator.Composer) Option {
	return func(c *config) { c.composer = composer }
}
