package evaluator

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"webmall/evaluation/webmall/checklist"
)

// CartSelectors locate the add-to-cart signals in the shop themes.
type CartSelectors struct {
	// Banner is the confirmation notice shown on a product page after adding it.
	Banner        string
	BannerPhrases []string
	// ProductPath marks product page URLs, e.g. "/product/".
	ProductPath string
	// CartItems are product links inside cart line items.
	CartItems string
	// ListingItems are product tiles in category or search listings;
	// AddedMarker and ProductLink are resolved inside each tile.
	ListingItems string
	AddedMarker  string
	ProductLink  string
}

// DefaultCartSelectors matches the classic and block WooCommerce themes.
func DefaultCartSelectors() CartSelectors {
	return CartSelectors{
		Banner:        ".woocommerce-message, .wc-block-components-notice-banner.is-success",
		BannerPhrases: []string{"added to your cart", "added to your basket", "added to cart"},
		ProductPath:   "/product/",
		CartItems:     "tr.cart_item td.product-name a[href], .wc-block-cart-item__product a.wc-block-components-product-name",
		ListingItems:  "li.product, .wc-block-grid__product",
		AddedMarker:   "a.added_to_cart, .add_to_cart_button.added",
		ProductLink:   "a.woocommerce-LoopProduct-link, a.wc-block-grid__product-link, a[href*='/product/']",
	}
}

func (s CartSelectors) withDefaults() CartSelectors {
	def := DefaultCartSelectors()
	if s.Banner == "" {
		s.Banner = def.Banner
	}
	if len(s.BannerPhrases) == 0 {
		s.BannerPhrases = def.BannerPhrases
	}
	if s.ProductPath == "" {
		s.ProductPath = def.ProductPath
	}
	if s.CartItems == "" {
		s.CartItems = def.CartItems
	}
	if s.ListingItems == "" {
		s.ListingItems = def.ListingItems
	}
	if s.AddedMarker == "" {
		s.AddedMarker = def.AddedMarker
	}
	if s.ProductLink == "" {
		s.ProductLink = def.ProductLink
	}
	return s
}

// detection is a product seen in a cart, identified by slug and shop host.
type detection struct {
	slug string
	host string
}

// CartEvaluator satisfies cart checkpoints when the product shows up as
// added to the cart of the shop it belongs to.
type CartEvaluator struct {
	opts Options
}

// NewCartEvaluator returns a CartEvaluator.
func NewCartEvaluator(opts Options) *CartEvaluator {
	return &CartEvaluator{opts: opts.withDefaults()}
}

func (e *CartEvaluator) Type() checklist.Type { return checklist.TypeCart }

func (e *CartEvaluator) Evaluate(_ string, page *PageSnapshot, checkpoints []*checklist.Checkpoint) Result {
	var result Result
	doc := page.Document()
	if doc == nil {
		return result
	}

	for _, det := range e.detect(page.currentURL(), doc) {
		matched := false
		for _, cp := range checkpoints {
			if cp.Satisfied() {
				continue
			}
			slug := Slug(cp.Value)
			if slug == "" {
				continue
			}
			if slug != det.slug || Host(cp.Value) != det.host {
				continue
			}
			matched = true
			if result.credit(cp) {
				e.opts.Logger.Debug("cart checkpoint %s satisfied by %s on %s", cp.ID, det.slug, det.host)
			}
		}
		if !matched {
			result.Wrong = append(result.Wrong, det.slug)
		}
	}
	return result
}

// detect collects products added to the cart from the three page signals,
// deduplicated in order of appearance.
func (e *CartEvaluator) detect(pageURL string, doc *goquery.Document) []detection {
	sel := e.opts.Cart
	pageHost := Host(pageURL)

	var found []detection
	seen := make(map[detection]bool)
	add := func(href string) {
		resolved := resolveHref(pageURL, href)
		slug := Slug(resolved)
		if slug == "" {
			return
		}
		host := Host(resolved)
		if host == "" {
			host = pageHost
		}
		det := detection{slug: slug, host: host}
		if !seen[det] {
			seen[det] = true
			found = append(found, det)
		}
	}

	// confirmation banner on the product's own page
	if strings.Contains(strings.ToLower(pageURL), sel.ProductPath) && e.hasBanner(doc) {
		add(pageURL)
	}

	// line items on the cart page
	doc.Find(sel.CartItems).Each(func(_ int, s *goquery.Selection) {
		add(s.AttrOr("href", ""))
	})

	// "added to cart" marker next to a product in a listing
	doc.Find(sel.ListingItems).Each(func(_ int, item *goquery.Selection) {
		if item.Find(sel.AddedMarker).Length() == 0 {
			return
		}
		link := item.Find(sel.ProductLink).First()
		add(link.AttrOr("href", ""))
	})

	return found
}

func (e *CartEvaluator) hasBanner(doc *goquery.Document) bool {
	found := false
	doc.Find(e.opts.Cart.Banner).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.ToLower(collapseSpace(s.Text()))
		for _, phrase := range e.opts.Cart.BannerPhrases {
			if strings.Contains(text, strings.ToLower(phrase)) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}
