package evaluator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"webmall/evaluation/webmall/checklist"
)

func TestStringEvaluatorMatchesNormalizedURLs(t *testing.T) {
	target := cp("answer1", checklist.TypeString, "shop2.example.com/product/widget", 0.5)
	page := answerPage("I found it at https://shop2.example.com/product/widget and also http://bad.example.com/x")

	result := NewStringEvaluator(testOptions()).Evaluate("", page, []*checklist.Checkpoint{target})

	require.True(t, target.Satisfied())
	require.InDelta(t, 0.5, result.Delta, 1e-9)
	require.True(t, result.Done)
	require.Equal(t, []string{"bad.example.com/x"}, result.Wrong)
}

func TestStringEvaluatorIgnoresPagesOutsideFrontend(t *testing.T) {
	target := cp("answer1", checklist.TypeString, "http://shop2.example.com/product/widget/", 0.5)
	page := NewPageSnapshot("http://shop2.example.com/product/widget", `<div id="final-answer">http://shop2.example.com/product/widget</div>`)

	result := NewStringEvaluator(testOptions()).Evaluate("", page, []*checklist.Checkpoint{target})

	require.False(t, target.Satisfied())
	require.False(t, result.Done)
	require.Zero(t, result.Delta)
}

func TestStringEvaluatorFrontendMatchesHostAndPathSegments(t *testing.T) {
	cases := []struct {
		frontend string
		page     string
		want     bool
	}{
		{"http://localhost:80", "http://localhost:8081/product/x", false},
		{"http://localhost:80", "http://localhost/", true},
		{"http://localhost:3000", "http://localhost:3000/answer?x=1", true},
		{"http://localhost:3000", "http://localhost:30001/", false},
		{"http://frontend.example.com/app", "http://frontend.example.com/application", false},
		{"http://frontend.example.com/app", "http://frontend.example.com/app/results", true},
		{"http://frontend.example.com", "http://frontend.example.com.evil.test/", false},
	}

	for _, tc := range cases {
		t.Run(tc.page, func(t *testing.T) {
			opts := DefaultOptions()
			opts.FrontendURL = tc.frontend
			target := cp("answer1", checklist.TypeString, "shop1.example.com/product/a", 1)
			page := NewPageSnapshot(tc.page, `<div id="final-answer">http://shop1.example.com/product/a</div>`)

			result := NewStringEvaluator(opts).Evaluate("", page, []*checklist.Checkpoint{target})
			require.Equal(t, tc.want, result.Done)
			require.Equal(t, tc.want, target.Satisfied())
		})
	}
}

func TestStringEvaluatorEmptySurfaceIsNoAnswer(t *testing.T) {
	result := NewStringEvaluator(testOptions()).Evaluate("", answerPage("   "), nil)
	require.False(t, result.Done)
	require.Empty(t, result.Wrong)
}

func TestStringEvaluatorDoneWithoutMatches(t *testing.T) {
	target := cp("answer1", checklist.TypeString, "shop1.example.com/product/a", 1)
	result := NewStringEvaluator(testOptions()).Evaluate("", answerPage("Nothing found."), []*checklist.Checkpoint{target})

	require.True(t, result.Done)
	require.False(t, target.Satisfied())
	require.Empty(t, result.Wrong)
}

func TestStringEvaluatorReadsInputValue(t *testing.T) {
	target := cp("answer1", checklist.TypeString, "http://shop1.example.com/product/a", 1)
	page := NewPageSnapshot(frontendURL+"/submit", `<input id="final-answer" value="http://shop1.example.com/product/a/.">`)

	result := NewStringEvaluator(testOptions()).Evaluate("", page, []*checklist.Checkpoint{target})
	require.True(t, target.Satisfied())
	require.True(t, result.Done)
}

func TestStringEvaluatorDoesNotRecreditOrReportSatisfied(t *testing.T) {
	target := cp("answer1", checklist.TypeString, "shop1.example.com/product/a", 1)
	target.Satisfy()
	page := answerPage("http://shop1.example.com/product/a http://shop1.example.com/product/a")

	result := NewStringEvaluator(testOptions()).Evaluate("", page, []*checklist.Checkpoint{target})
	require.Zero(t, result.Delta)
	require.Empty(t, result.Wrong)
	require.True(t, target.Satisfied())
}

func TestStringEvaluatorMessageSource(t *testing.T) {
	opts := testOptions()
	opts.AnswerSource = AnswerFromMessage
	target := cp("answer1", checklist.TypeString, "shop1.example.com/product/a", 1)

	result := NewStringEvaluator(opts).Evaluate("See https://shop1.example.com/product/a.", nil, []*checklist.Checkpoint{target})
	require.True(t, result.Done)
	require.True(t, target.Satisfied())

	result = NewStringEvaluator(opts).Evaluate("", nil, nil)
	require.False(t, result.Done)
}

func TestNormalizeAndExtract(t *testing.T) {
	require.Equal(t, "shop.example.com/p", NormalizeURL(" HTTPS://shop.example.com/p// "))
	require.Equal(t, []string{"http://a.example.com/x", "https://b.example.com/y?z=1"},
		ExtractURLs("(http://a.example.com/x), then https://b.example.com/y?z=1."))
	require.Equal(t, "widget-42", Slug("http://shop1.example.com/product/Widget-42/"))
	require.Equal(t, "", Slug("shop1.example.com"))
	require.Equal(t, "shop1.example.com:8081", Host("shop1.example.com:8081/product/x"))
}
