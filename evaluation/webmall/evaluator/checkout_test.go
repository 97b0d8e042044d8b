package evaluator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"webmall/evaluation/webmall/checklist"
)

func TestCheckoutEvaluatorFullMatch(t *testing.T) {
	target := checkoutCheckpoint()
	page := NewPageSnapshot(orderReceivedURL, orderReceivedHTML(fullBilling))

	result := NewCheckoutEvaluator(testOptions()).Evaluate("", page, []*checklist.Checkpoint{target})

	require.True(t, target.Satisfied())
	require.InDelta(t, 0.5, result.Delta, 1e-9)
	require.Equal(t, []string{"extra-cable"}, result.Wrong)
}

func TestCheckoutEvaluatorMissingBillingField(t *testing.T) {
	target := checkoutCheckpoint()
	billing := strings.Replace(fullBilling, "Main Street 5<br/>", "", 1)
	page := NewPageSnapshot(orderReceivedURL, orderReceivedHTML(billing))

	result := NewCheckoutEvaluator(testOptions()).Evaluate("", page, []*checklist.Checkpoint{target})

	require.False(t, target.Satisfied())
	require.Zero(t, result.Delta)
}

func TestCheckoutEvaluatorCountryMustMatch(t *testing.T) {
	target := checkoutCheckpoint()
	billing := strings.Replace(fullBilling, "<br/>DE", "<br/>France", 1)
	page := NewPageSnapshot(orderReceivedURL, orderReceivedHTML(billing))

	NewCheckoutEvaluator(testOptions()).Evaluate("", page, []*checklist.Checkpoint{target})
	require.False(t, target.Satisfied())

	target.UserDetails["country"] = "FR"
	NewCheckoutEvaluator(testOptions()).Evaluate("", page, []*checklist.Checkpoint{target})
	require.True(t, target.Satisfied())
}

func TestCheckoutEvaluatorEmailMustAppear(t *testing.T) {
	target := checkoutCheckpoint()
	target.UserDetails["email"] = "someone.else@example.com"
	page := NewPageSnapshot(orderReceivedURL, orderReceivedHTML(fullBilling))

	NewCheckoutEvaluator(testOptions()).Evaluate("", page, []*checklist.Checkpoint{target})
	require.False(t, target.Satisfied())
}

func TestCheckoutEvaluatorEmailNeedsWholeAddress(t *testing.T) {
	target := checkoutCheckpoint()
	target.UserDetails["email"] = "e@example.com"
	page := NewPageSnapshot(orderReceivedURL, orderReceivedHTML(fullBilling))

	NewCheckoutEvaluator(testOptions()).Evaluate("", page, []*checklist.Checkpoint{target})
	require.False(t, target.Satisfied())
}

func TestCheckoutEvaluatorMissingDetailsNeverMatch(t *testing.T) {
	for _, key := range checklist.CheckoutDetails {
		t.Run(key, func(t *testing.T) {
			target := checkoutCheckpoint()
			delete(target.UserDetails, key)
			page := NewPageSnapshot(orderReceivedURL, orderReceivedHTML(fullBilling))

			result := NewCheckoutEvaluator(testOptions()).Evaluate("", page, []*checklist.Checkpoint{target})
			require.False(t, target.Satisfied())
			require.Zero(t, result.Delta)
		})
	}

	target := checkoutCheckpoint()
	target.UserDetails = nil
	page := NewPageSnapshot(orderReceivedURL, orderReceivedHTML(`Somebody Else<br/>Other Road 9<br/>10115 Berlin<br/>Berlin<br/>DE`))
	result := NewCheckoutEvaluator(testOptions()).Evaluate("", page, []*checklist.Checkpoint{target})
	require.False(t, target.Satisfied())
	require.Zero(t, result.Delta)
}

func TestCheckoutEvaluatorSplitName(t *testing.T) {
	target := checkoutCheckpoint()
	delete(target.UserDetails, "name")
	target.UserDetails["first_name"] = "Jane"
	target.UserDetails["last_name"] = "Doe"
	page := NewPageSnapshot(orderReceivedURL, orderReceivedHTML(fullBilling))

	NewCheckoutEvaluator(testOptions()).Evaluate("", page, []*checklist.Checkpoint{target})
	require.True(t, target.Satisfied())
}

func TestCheckoutEvaluatorOnlyOnConfirmationPage(t *testing.T) {
	target := checkoutCheckpoint()
	page := NewPageSnapshot("http://shop2.example.com/checkout/", orderReceivedHTML(fullBilling))

	result := NewCheckoutEvaluator(testOptions()).Evaluate("", page, []*checklist.Checkpoint{target})
	require.False(t, target.Satisfied())
	require.Empty(t, result.Wrong)
}

func TestCheckoutEvaluatorWrongProductPurchased(t *testing.T) {
	target := checkoutCheckpoint()
	target.Value = "http://shop2.example.com/product/widget-99"
	page := NewPageSnapshot(orderReceivedURL, orderReceivedHTML(fullBilling))

	result := NewCheckoutEvaluator(testOptions()).Evaluate("", page, []*checklist.Checkpoint{target})
	require.False(t, target.Satisfied())
	require.Equal(t, []string{"widget-42", "extra-cable"}, result.Wrong)
}

func TestCheckoutEvaluatorDoesNotRecredit(t *testing.T) {
	target := checkoutCheckpoint()
	target.Satisfy()
	page := NewPageSnapshot(orderReceivedURL, orderReceivedHTML(fullBilling))

	result := NewCheckoutEvaluator(testOptions()).Evaluate("", page, []*checklist.Checkpoint{target})
	require.Zero(t, result.Delta)
	require.Equal(t, []string{"extra-cable"}, result.Wrong)
}
