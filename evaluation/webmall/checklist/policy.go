package checklist

import (
	"sort"
	"sync"

	werrors "webmall/internal/errors"
)

// Group is a weighting bucket. Every checkpoint in a group receives an equal
// slice of the group's share.
type Group string

const (
	GroupAnswers      Group = "answers"
	GroupShopVisits   Group = "shop_visits"
	GroupProductPages Group = "product_pages"
)

// Policy names shipped with the harness.
const (
	PolicyDefault       = "default"
	PolicyAnswerFocused = "answer_focused"
)

// WeightPolicy describes how a task family splits its maximum score.
// Groups absent from Shares (or with a zero share) are not built at all.
type WeightPolicy struct {
	Name   string            `json:"name" yaml:"name"`
	Shares map[Group]float64 `json:"shares" yaml:"shares"`
	// CartIDPrefix names companion cart checkpoints of checkout tasks,
	// suffixed with the 1-based answer index.
	CartIDPrefix string `json:"cart_id_prefix" yaml:"cart_id_prefix"`
}

// Share returns the share of g.
func (p WeightPolicy) Share(g Group) float64 {
	return p.Shares[g]
}

// Nominal is the maximum score a checklist built with p sums to.
func (p WeightPolicy) Nominal() float64 {
	var total float64
	for _, share := range p.Shares {
		total += share
	}
	return total
}

// Validate rejects negative shares and empty policies.
func (p WeightPolicy) Validate() error {
	if p.Name == "" {
		return werrors.MissingField("weighting.name")
	}
	for g, share := range p.Shares {
		if share < 0 {
			return werrors.NewConfigError("weighting."+p.Name, "group %s has negative share %v", g, share)
		}
	}
	if p.Nominal() <= 0 {
		return werrors.NewConfigError("weighting."+p.Name, "shares must sum to a positive value")
	}
	if p.Share(GroupAnswers) <= 0 {
		return werrors.NewConfigError("weighting."+p.Name, "answers group needs a positive share")
	}
	return nil
}

// DefaultPolicy splits 0.5 answers, 0.2 shop visits and 0.3 product pages
// plus carts. Cart checkpoints share their id with the checkout checkpoint.
func DefaultPolicy() WeightPolicy {
	return WeightPolicy{
		Name: PolicyDefault,
		Shares: map[Group]float64{
			GroupAnswers:      0.5,
			GroupShopVisits:   0.2,
			GroupProductPages: 0.3,
		},
		CartIDPrefix: "answer",
	}
}

// AnswerFocusedPolicy splits 0.8 answers and 0.2 product pages plus carts.
func AnswerFocusedPolicy() WeightPolicy {
	return WeightPolicy{
		Name: PolicyAnswerFocused,
		Shares: map[Group]float64{
			GroupAnswers:      0.8,
			GroupProductPages: 0.2,
		},
		CartIDPrefix: "cart",
	}
}

// PolicyRegistry resolves weighting policies by name.
type PolicyRegistry struct {
	mu       sync.RWMutex
	policies map[string]WeightPolicy
}

// NewPolicyRegistry returns a registry preloaded with the shipped policies.
func NewPolicyRegistry() *PolicyRegistry {
	r := &PolicyRegistry{policies: make(map[string]WeightPolicy)}
	for _, p := range []WeightPolicy{DefaultPolicy(), AnswerFocusedPolicy()} {
		r.policies[p.Name] = p
	}
	return r
}

// Register adds or replaces a policy.
func (r *PolicyRegistry) Register(p WeightPolicy) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies[p.Name] = p
	return nil
}

// Lookup returns the named policy; an empty name means PolicyDefault.
func (r *PolicyRegistry) Lookup(name string) (WeightPolicy, error) {
	if name == "" {
		name = PolicyDefault
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.policies[name]
	if !ok {
		return WeightPolicy{}, werrors.NewConfigError("weighting", "unknown policy %q", name)
	}
	return p, nil
}

// Names lists registered policy names, sorted.
func (r *PolicyRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.policies))
	for name := range r.policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
