package evaluator

import (
	"webmall/evaluation/webmall/checklist"
	"webmall/internal/logging"
)

// Evaluator detects one checkpoint type against the current page state and
// the agent's latest message. It flips every checkpoint it newly satisfies
// and never touches one that is already satisfied.
type Evaluator interface {
	Type() checklist.Type
	Evaluate(lastMessage string, page *PageSnapshot, checkpoints []*checklist.Checkpoint) Result
}

// Result is what one evaluator contributes to a step.
type Result struct {
	Delta float64
	// Wrong lists submissions or detections that matched no checkpoint.
	Wrong []string
	// Done is raised once the agent has handed in a final answer.
	Done bool
}

// credit satisfies cp and adds its weight when the flag was newly flipped.
func (r *Result) credit(cp *checklist.Checkpoint) bool {
	if !cp.Satisfy() {
		return false
	}
	r.Delta += cp.Weight
	return true
}

// Answer sources for the string evaluator.
const (
	AnswerFromPage    = "page"
	AnswerFromMessage = "message"
)

// Options tune the detection strategies to the shop deployment.
type Options struct {
	// FrontendURL is the page hosting the final-answer surface.
	FrontendURL string
	// AnswerSelector locates the final-answer surface on the frontend.
	AnswerSelector string
	// AnswerSource is AnswerFromPage (default) or AnswerFromMessage.
	AnswerSource string

	Cart           CartSelectors
	Checkout       CheckoutSelectors
	CountryAliases [][]string

	Logger logging.Logger
}

// DefaultOptions returns selectors for the stock WooCommerce themes used by
// the benchmark shops.
func DefaultOptions() Options {
	return Options{
		AnswerSelector: "#final-answer",
		AnswerSource:   AnswerFromPage,
		Cart:           DefaultCartSelectors(),
		Checkout:       DefaultCheckoutSelectors(),
		CountryAliases: DefaultCountryAliases(),
	}
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.AnswerSelector == "" {
		o.AnswerSelector = def.AnswerSelector
	}
	if o.AnswerSource == "" {
		o.AnswerSource = def.AnswerSource
	}
	o.Cart = o.Cart.withDefaults()
	o.Checkout = o.Checkout.withDefaults()
	if o.CountryAliases == nil {
		o.CountryAliases = def.CountryAliases
	}
	o.Logger = logging.OrNop(o.Logger)
	return o
}
