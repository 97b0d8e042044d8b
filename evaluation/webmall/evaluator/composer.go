package evaluator

import (
	"sync"

	"webmall/evaluation/webmall/checklist"
	werrors "webmall/internal/errors"
	"webmall/internal/logging"
)

// Factory builds a fresh evaluator for one step.
type Factory func(opts Options) Evaluator

// Outcome aggregates every evaluator run of one step.
type Outcome struct {
	Delta     float64
	Done      bool
	Wrong     []string
	Checklist *checklist.Checklist
}

// Composer routes the open checkpoints of a checklist to one evaluator per
// type and merges their results.
type Composer struct {
	mu        sync.RWMutex
	factories map[checklist.Type]Factory
	opts      Options
	logger    logging.Logger
}

// NewComposer returns a composer with the four built-in evaluators.
func NewComposer(opts Options) *Composer {
	opts = opts.withDefaults()
	c := &Composer{
		factories: make(map[checklist.Type]Factory),
		opts:      opts,
		logger:    opts.Logger,
	}
	c.Register(checklist.TypeString, func(o Options) Evaluator { return NewStringEvaluator(o) })
	c.Register(checklist.TypeURL, func(o Options) Evaluator { return NewURLEvaluator(o) })
	c.Register(checklist.TypeCart, func(o Options) Evaluator { return NewCartEvaluator(o) })
	c.Register(checklist.TypeCheckout, func(o Options) Evaluator { return NewCheckoutEvaluator(o) })
	return c
}

// Register installs or replaces the factory for t.
func (c *Composer) Register(t checklist.Type, factory Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[t] = factory
}

// Route returns the types evaluated this step: every type with an open
// checkpoint, plus the string type which carries the termination signal.
func (c *Composer) Route(list *checklist.Checklist) ([]checklist.Type, error) {
	types := list.UnsatisfiedTypes()
	hasString := false
	for _, t := range types {
		if t == checklist.TypeString {
			hasString = true
			break
		}
	}
	if !hasString {
		types = append([]checklist.Type{checklist.TypeString}, types...)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range types {
		if _, ok := c.factories[t]; !ok {
			return nil, &werrors.UnsupportedTypeError{Type: string(t)}
		}
	}
	return types, nil
}

// Score runs the routed evaluators sequentially and flips satisfied
// checkpoints on list in place.
func (c *Composer) Score(lastMessage string, page *PageSnapshot, list *checklist.Checklist) (Outcome, error) {
	if page == nil {
		page = &PageSnapshot{}
	}
	if list == nil {
		list = checklist.New()
	}

	types, err := c.Route(list)
	if err != nil {
		c.logger.Error("routing failed: %v", err)
		return Outcome{Checklist: list}, err
	}

	outcome := Outcome{Checklist: list}
	for _, t := range types {
		c.mu.RLock()
		factory := c.factories[t]
		c.mu.RUnlock()

		result := factory(c.opts).Evaluate(lastMessage, page, list.ByType(t))
		outcome.Delta += result.Delta
		outcome.Wrong = append(outcome.Wrong, result.Wrong...)
		outcome.Done = outcome.Done || result.Done
	}
	c.logger.Debug("scored step on %s: delta=%.4f done=%t wrong=%d", page.URL, outcome.Delta, outcome.Done, len(outcome.Wrong))
	return outcome, nil
}
