package evaluator

import (
	"strings"

	"webmall/evaluation/webmall/checklist"
)

// URLEvaluator satisfies url checkpoints whose target is part of the
// current page URL.
type URLEvaluator struct {
	opts Options
}

// NewURLEvaluator returns a URLEvaluator.
func NewURLEvaluator(opts Options) *URLEvaluator {
	return &URLEvaluator{opts: opts.withDefaults()}
}

func (e *URLEvaluator) Type() checklist.Type { return checklist.TypeURL }

func (e *URLEvaluator) Evaluate(_ string, page *PageSnapshot, checkpoints []*checklist.Checkpoint) Result {
	var result Result
	current := NormalizeURL(page.currentURL())
	if current == "" {
		return result
	}
	for _, cp := range checkpoints {
		if cp.Satisfied() {
			continue
		}
		target := NormalizeURL(cp.Value)
		if target == "" {
			continue
		}
		if strings.Contains(current, target) && result.credit(cp) {
			e.opts.Logger.Debug("url checkpoint %s reached at %s", cp.ID, current)
		}
	}
	return result
}
