package shops

import (
	"fmt"
	"strings"

	werrors "webmall/internal/errors"
)

// Environment keys naming the benchmark shops and the answer frontend.
const (
	KeyShop1    = "SHOP1_URL"
	KeyShop2    = "SHOP2_URL"
	KeyShop3    = "SHOP3_URL"
	KeyShop4    = "SHOP4_URL"
	KeyFrontend = "FRONTEND_URL"
)

// ShopKeys lists the shop keys in shop order.
var ShopKeys = []string{KeyShop1, KeyShop2, KeyShop3, KeyShop4}

// AllKeys lists every key a task instance needs.
func AllKeys() []string {
	return append(append([]string(nil), ShopKeys...), KeyFrontend)
}

// Shop is one resolved shop base URL.
type Shop struct {
	Index int    // 1-based
	Key   string // SHOPn_URL
	URL   string
}

// URLs holds the resolved base URL for every shop and the frontend.
type URLs struct {
	values map[string]string
}

// FromMap builds URLs from key/value pairs and fails with a ConfigError when
// a required key is missing or empty. Trailing slashes are trimmed.
func FromMap(values map[string]string) (URLs, error) {
	resolved := make(map[string]string, len(values))
	for _, key := range AllKeys() {
		value := strings.TrimRight(strings.TrimSpace(values[key]), "/")
		if value == "" {
			return URLs{}, werrors.MissingField(key)
		}
		resolved[key] = value
	}
	return URLs{values: resolved}, nil
}

// Get returns the URL for key.
func (u URLs) Get(key string) string {
	return u.values[key]
}

// Frontend returns the answer frontend URL.
func (u URLs) Frontend() string {
	return u.values[KeyFrontend]
}

// Shops returns the four shops in order.
func (u URLs) Shops() []Shop {
	shops := make([]Shop, 0, len(ShopKeys))
	for i, key := range ShopKeys {
		shops = append(shops, Shop{Index: i + 1, Key: key, URL: u.values[key]})
	}
	return shops
}

// Replacer substitutes the shop port placeholders used in task files
// (http://localhost:SHOPn_PORT) and templated keys ({{SHOPn_URL}}).
func (u URLs) Replacer() *strings.Replacer {
	pairs := make([]string, 0, 4*len(ShopKeys)+2)
	for i, key := range ShopKeys {
		pairs = append(pairs,
			fmt.Sprintf("http://localhost:SHOP%d_PORT", i+1), u.values[key],
			"{{"+key+"}}", u.values[key],
		)
	}
	pairs = append(pairs, "{{"+KeyFrontend+"}}", u.values[KeyFrontend])
	return strings.NewReplacer(pairs...)
}

// Substitute applies Replacer to text.
func (u URLs) Substitute(text string) string {
	if len(u.values) == 0 {
		return text
	}
	return u.Replacer().Replace(text)
}
