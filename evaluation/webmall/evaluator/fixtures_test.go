package evaluator

import (
	"webmall/evaluation/webmall/checklist"
)

const frontendURL = "http://frontend.example.com"

func testOptions() Options {
	opts := DefaultOptions()
	opts.FrontendURL = frontendURL
	return opts
}

func cp(id string, typ checklist.Type, value string, weight float64) *checklist.Checkpoint {
	return &checklist.Checkpoint{ID: id, Type: typ, Value: value, Weight: weight}
}

func answerPage(text string) *PageSnapshot {
	return NewPageSnapshot(frontendURL+"/", `<html><body><h1>Submit</h1><div id="final-answer">`+text+`</div></body></html>`)
}

const productBannerHTML = `<html><body>
<div class="woocommerce-notices-wrapper">
  <div class="woocommerce-message" role="alert">
    <a href="http://shop1.example.com/cart/" class="button wc-forward">View cart</a>
    &ldquo;Widget 42&rdquo; has been added to your cart.
  </div>
</div>
<h1 class="product_title">Widget 42</h1>
</body></html>`

const cartPageHTML = `<html><body>
<form class="woocommerce-cart-form">
<table class="shop_table cart">
  <tr class="woocommerce-cart-form__cart-item cart_item">
    <td class="product-name"><a href="/product/widget-42/">Widget 42</a></td>
    <td class="product-quantity">1</td>
  </tr>
</table>
</form>
</body></html>`

const listingHTML = `<html><body>
<ul class="products">
  <li class="product">
    <a href="http://shop3.example.com/product/widget-pro/" class="woocommerce-LoopProduct-link">Widget Pro</a>
    <a href="?add-to-cart=7" class="button add_to_cart_button added">Add to cart</a>
    <a href="http://shop3.example.com/cart/" class="added_to_cart wc-forward">View cart</a>
  </li>
  <li class="product">
    <a href="http://shop3.example.com/product/other-thing/" class="woocommerce-LoopProduct-link">Other</a>
    <a href="?add-to-cart=8" class="button add_to_cart_button">Add to cart</a>
  </li>
</ul>
</body></html>`

const orderReceivedURL = "http://shop2.example.com/checkout/order-received/123/?key=wc_order_abc"

func orderReceivedHTML(billingLines string) string {
	return `<html><body>
<p class="woocommerce-thankyou-order-received">Thank you. Your order has been received.</p>
<section class="woocommerce-order-details">
<table class="woocommerce-table woocommerce-table--order-details shop_table order_details">
<tbody>
  <tr class="woocommerce-table__line-item order_item">
    <td class="woocommerce-table__product-name product-name"><a href="http://shop2.example.com/product/widget-42/">Widget 42</a> x 1</td>
  </tr>
  <tr class="woocommerce-table__line-item order_item">
    <td class="woocommerce-table__product-name product-name"><a href="http://shop2.example.com/product/extra-cable/">Extra cable</a> x 1</td>
  </tr>
</tbody>
</table>
</section>
<section class="woocommerce-customer-details">
  <div class="woocommerce-column woocommerce-column--1 woocommerce-column--billing-address col-1">
    <h2 class="woocommerce-column__title">Billing address</h2>
    <address>` + billingLines + `
      <p class="woocommerce-customer-details--email">jane@example.com</p>
    </address>
  </div>
</section>
</body></html>`
}

const fullBilling = `Jane Doe<br/>Main Street 5<br/>68159 Mannheim<br/>Baden-Württemberg<br/>DE`

func checkoutCheckpoint() *checklist.Checkpoint {
	c := cp("answer1", checklist.TypeCheckout, "http://shop2.example.com/product/widget-42", 0.5)
	c.UserDetails = map[string]any{
		"name":         "Jane Doe",
		"street":       "Main Street",
		"house_number": "5",
		"zip":          "68159",
		"state":        "Baden-Württemberg",
		"country":      "Germany",
		"email":        "jane@example.com",
	}
	c.PaymentInfo = map[string]any{"method": "Cash on delivery"}
	return c
}
