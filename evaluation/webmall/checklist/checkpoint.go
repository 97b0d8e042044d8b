package checklist

import (
	"fmt"
	"strings"
)

// Type selects which evaluator claims a checkpoint.
type Type string

const (
	TypeString   Type = "string"
	TypeURL      Type = "url"
	TypeCart     Type = "cart"
	TypeCheckout Type = "checkout"
)

// AllTypes returns the known checkpoint types in routing order.
func AllTypes() []Type {
	return []Type{TypeString, TypeURL, TypeCart, TypeCheckout}
}

// Checkpoint is one gradable sub-goal. Once satisfied it stays satisfied for
// the lifetime of its checklist.
type Checkpoint struct {
	ID     string
	Value  string
	Type   Type
	Weight float64

	// Set on checkout checkpoints only.
	UserDetails map[string]any
	PaymentInfo map[string]any

	flag bool
}

// Satisfied reports whether the checkpoint has been reached.
func (c *Checkpoint) Satisfied() bool {
	return c.flag
}

// Satisfy marks the checkpoint as reached. It returns true only for the call
// that flipped the flag, so callers credit the weight exactly once.
func (c *Checkpoint) Satisfy() bool {
	if c.flag {
		return false
	}
	c.flag = true
	return true
}

// CheckoutDetails are the user details an order confirmation is checked
// against. A name may also be given as first_name and last_name.
var CheckoutDetails = []string{"name", "street", "house_number", "zip", "state", "country", "email"}

// UserDetail returns a user detail as text, or "" when absent. "name" falls
// back to first_name and last_name.
func (c *Checkpoint) UserDetail(key string) string {
	return userDetail(c.UserDetails, key)
}

// MissingCheckoutDetails lists the CheckoutDetails absent from details.
func MissingCheckoutDetails(details map[string]any) []string {
	var missing []string
	for _, key := range CheckoutDetails {
		if userDetail(details, key) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

func userDetail(details map[string]any, key string) string {
	value := detailString(details, key)
	if value != "" || key != "name" {
		return value
	}
	return strings.Join(strings.Fields(detailString(details, "first_name")+" "+detailString(details, "last_name")), " ")
}

// Record is the serialized view of a checkpoint.
type Record struct {
	ID          string         `json:"id"`
	Value       string         `json:"value"`
	Type        Type           `json:"type"`
	Flag        bool           `json:"flag"`
	Weight      float64        `json:"weight"`
	UserDetails map[string]any `json:"user_details,omitempty"`
	PaymentInfo map[string]any `json:"payment_info,omitempty"`
}

// Record snapshots the checkpoint.
func (c *Checkpoint) Record() Record {
	return Record{
		ID:          c.ID,
		Value:       c.Value,
		Type:        c.Type,
		Flag:        c.flag,
		Weight:      c.Weight,
		UserDetails: c.UserDetails,
		PaymentInfo: c.PaymentInfo,
	}
}

func detailString(details map[string]any, key string) string {
	if details == nil {
		return ""
	}
	value, ok := details[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
