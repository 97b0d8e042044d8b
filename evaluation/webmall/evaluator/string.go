package evaluator

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"webmall/evaluation/webmall/checklist"
)

// StringEvaluator grades the agent's final answer: every URL it submits is
// compared with the string checkpoints after normalization.
type StringEvaluator struct {
	opts Options
}

// NewStringEvaluator returns a StringEvaluator.
func NewStringEvaluator(opts Options) *StringEvaluator {
	return &StringEvaluator{opts: opts.withDefaults()}
}

func (e *StringEvaluator) Type() checklist.Type { return checklist.TypeString }

func (e *StringEvaluator) Evaluate(lastMessage string, page *PageSnapshot, checkpoints []*checklist.Checkpoint) Result {
	answer, ok := e.finalAnswer(lastMessage, page)
	if !ok {
		return Result{}
	}

	result := Result{Done: true}
	seen := make(map[string]bool)
	for _, raw := range ExtractURLs(answer) {
		submitted := NormalizeURL(raw)
		if submitted == "" || seen[submitted] {
			continue
		}
		seen[submitted] = true

		matched := false
		for _, cp := range checkpoints {
			target := NormalizeURL(cp.Value)
			if target == "" || target != submitted {
				continue
			}
			matched = true
			if result.credit(cp) {
				e.opts.Logger.Debug("string checkpoint %s satisfied by %s", cp.ID, submitted)
			}
		}
		if !matched {
			result.Wrong = append(result.Wrong, submitted)
		}
	}
	return result
}

// finalAnswer reads the submitted answer. Without one the agent has not
// finished yet and nothing is graded.
func (e *StringEvaluator) finalAnswer(lastMessage string, page *PageSnapshot) (string, bool) {
	if e.opts.AnswerSource == AnswerFromMessage {
		answer := strings.TrimSpace(lastMessage)
		return answer, answer != ""
	}

	if !e.onFrontend(page.currentURL()) {
		return "", false
	}
	doc := page.Document()
	if doc == nil {
		return "", false
	}
	var parts []string
	doc.Find(e.opts.AnswerSelector).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			text = strings.TrimSpace(s.AttrOr("value", ""))
		}
		if text != "" {
			parts = append(parts, text)
		}
	})
	answer := strings.Join(parts, "\n")
	return answer, answer != ""
}

// onFrontend requires the frontend's host and port, then its path on a
// segment boundary.
func (e *StringEvaluator) onFrontend(pageURL string) bool {
	frontend := parseLoose(e.opts.FrontendURL)
	if frontend == nil {
		return true
	}
	page := parseLoose(pageURL)
	if page == nil || siteKey(page) != siteKey(frontend) {
		return false
	}
	base := strings.Trim(frontend.Path, "/")
	path := strings.Trim(page.Path, "/")
	return base == "" || path == base || strings.HasPrefix(path, base+"/")
}
