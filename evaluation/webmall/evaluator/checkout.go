package evaluator

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"webmall/evaluation/webmall/checklist"
)

// CheckoutSelectors locate the order confirmation content.
type CheckoutSelectors struct {
	// ConfirmationPaths mark order-received URLs.
	ConfirmationPaths []string
	// ProductLinks hold one selector per theme for purchased product links.
	ProductLinks []string
	// BillingAddress selects the billing address block.
	BillingAddress string
}

// DefaultCheckoutSelectors matches the classic and block WooCommerce themes.
func DefaultCheckoutSelectors() CheckoutSelectors {
	return CheckoutSelectors{
		ConfirmationPaths: []string{"/checkout/order-received/", "order-received"},
		ProductLinks: []string{
			".woocommerce-table--order-details .woocommerce-table__product-name a",
			".wc-block-order-confirmation-totals .wc-block-order-confirmation-totals__product a",
		},
		BillingAddress: ".woocommerce-column--billing-address address, .wc-block-order-confirmation-billing-address address, .woocommerce-customer-details address",
	}
}

func (s CheckoutSelectors) withDefaults() CheckoutSelectors {
	def := DefaultCheckoutSelectors()
	if len(s.ConfirmationPaths) == 0 {
		s.ConfirmationPaths = def.ConfirmationPaths
	}
	if len(s.ProductLinks) == 0 {
		s.ProductLinks = def.ProductLinks
	}
	if s.BillingAddress == "" {
		s.BillingAddress = def.BillingAddress
	}
	return s
}

// DefaultCountryAliases groups spellings WooCommerce may render for the
// countries used in the benchmark user profiles.
func DefaultCountryAliases() [][]string {
	return [][]string{
		{"Germany", "DE", "Deutschland"},
		{"Austria", "AT", "Österreich"},
		{"Switzerland", "CH", "Schweiz"},
		{"United States", "US", "USA", "United States (US)", "United States of America"},
		{"United Kingdom", "UK", "GB", "United Kingdom (UK)", "Great Britain"},
		{"France", "FR"},
		{"Netherlands", "NL", "The Netherlands"},
	}
}

// billingFields are checked against the billing address block, in order.
// Missing values never match.
var billingFields = []string{"name", "street", "house_number", "zip", "state"}

// CheckoutEvaluator satisfies checkout checkpoints on the order confirmation
// page when the purchased product, billing address and email all match.
type CheckoutEvaluator struct {
	opts Options
}

// NewCheckoutEvaluator returns a CheckoutEvaluator.
func NewCheckoutEvaluator(opts Options) *CheckoutEvaluator {
	return &CheckoutEvaluator{opts: opts.withDefaults()}
}

func (e *CheckoutEvaluator) Type() checklist.Type { return checklist.TypeCheckout }

func (e *CheckoutEvaluator) Evaluate(_ string, page *PageSnapshot, checkpoints []*checklist.Checkpoint) Result {
	var result Result
	if !e.onConfirmation(page.currentURL()) {
		return result
	}
	doc := page.Document()
	if doc == nil {
		return result
	}

	purchased, order := e.purchasedSlugs(page.currentURL(), doc)
	address := e.billingText(doc)
	pageText := collapseSpace(doc.Text())

	expected := make(map[string]bool)
	for _, cp := range checkpoints {
		slug := Slug(cp.Value)
		if slug == "" {
			continue
		}
		expected[slug] = true
		if cp.Satisfied() || !purchased[slug] {
			continue
		}
		if !e.billingMatches(cp, address) || !emailMatches(cp, pageText) {
			e.opts.Logger.Debug("checkout checkpoint %s: order details do not match", cp.ID)
			continue
		}
		if result.credit(cp) {
			e.opts.Logger.Debug("checkout checkpoint %s satisfied", cp.ID)
		}
	}

	for _, slug := range order {
		if !expected[slug] {
			result.Wrong = append(result.Wrong, slug)
		}
	}
	return result
}

func (e *CheckoutEvaluator) onConfirmation(pageURL string) bool {
	current := strings.ToLower(pageURL)
	for _, marker := range e.opts.Checkout.ConfirmationPaths {
		if marker != "" && strings.Contains(current, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}

func (e *CheckoutEvaluator) purchasedSlugs(pageURL string, doc *goquery.Document) (map[string]bool, []string) {
	set := make(map[string]bool)
	var order []string
	for _, selector := range e.opts.Checkout.ProductLinks {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			href := s.AttrOr("href", "")
			if href == "" {
				href = s.Find("a[href]").First().AttrOr("href", "")
			}
			slug := Slug(resolveHref(pageURL, href))
			if slug == "" || set[slug] {
				return
			}
			set[slug] = true
			order = append(order, slug)
		})
	}
	return set, order
}

// billingText renders the address block with line breaks kept as spaces.
func (e *CheckoutEvaluator) billingText(doc *goquery.Document) string {
	var parts []string
	doc.Find(e.opts.Checkout.BillingAddress).Each(func(_ int, s *goquery.Selection) {
		block := s.Clone()
		block.Find("br").ReplaceWithHtml("\n")
		parts = append(parts, block.Text())
	})
	return collapseSpace(strings.Join(parts, "\n"))
}

func (e *CheckoutEvaluator) billingMatches(cp *checklist.Checkpoint, address string) bool {
	if address == "" {
		return false
	}
	for _, field := range billingFields {
		if !containsPhrase(address, cp.UserDetail(field)) {
			return false
		}
	}
	return e.countryMatches(address, cp.UserDetail("country"))
}

func (e *CheckoutEvaluator) countryMatches(address, country string) bool {
	if country == "" {
		return false
	}
	if containsPhrase(address, country) {
		return true
	}
	for _, group := range e.opts.CountryAliases {
		if !containsFold(group, country) {
			continue
		}
		for _, alias := range group {
			if containsPhrase(address, alias) {
				return true
			}
		}
	}
	return false
}

// emailMatches requires the whole address, so a@example.com does not match
// a page showing anna@example.com.
func emailMatches(cp *checklist.Checkpoint, pageText string) bool {
	return containsPhrase(pageText, cp.UserDetail("email"))
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), strings.TrimSpace(value)) {
			return true
		}
	}
	return false
}
