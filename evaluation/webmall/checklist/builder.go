package checklist

import (
	"fmt"
	"sort"
	"strings"

	"webmall/evaluation/webmall/shops"
	"webmall/evaluation/webmall/taskspec"
	werrors "webmall/internal/errors"
)

// Build constructs the checklist of one task instance from its specification
// and the resolved shop URLs, weighting the groups according to policy.
func Build(spec taskspec.Spec, urls shops.URLs, policy WeightPolicy) (*Checklist, error) {
	if spec.CorrectAnswer == nil || len(spec.CorrectAnswer.Answers) == 0 {
		return nil, werrors.MissingField("correct_answer.answers")
	}
	for _, key := range shops.AllKeys() {
		if urls.Get(key) == "" {
			return nil, werrors.MissingField(key)
		}
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	replacer := urls.Replacer()
	answerType := Type(spec.AnswerType())
	checkout := answerType == TypeCheckout
	if checkout {
		if missing := MissingCheckoutDetails(spec.UserDetails); len(missing) > 0 {
			return nil, werrors.NewConfigError("user_details", "checkout task lacks %s", strings.Join(missing, ", "))
		}
	}

	groups := map[Group][]*Checkpoint{}

	var answers []string
	for i, raw := range spec.CorrectAnswer.Answers {
		answer := replacer.Replace(strings.TrimSpace(raw))
		answers = append(answers, answer)
		id := fmt.Sprintf("answer%d", i+1)
		if !checkout {
			groups[GroupAnswers] = append(groups[GroupAnswers], &Checkpoint{ID: id, Value: answer, Type: answerType})
			continue
		}
		groups[GroupAnswers] = append(groups[GroupAnswers], &Checkpoint{
			ID:          id,
			Value:       answer,
			Type:        TypeCheckout,
			UserDetails: spec.UserDetails,
			PaymentInfo: spec.PaymentInfo,
		})
		groups[GroupProductPages] = append(groups[GroupProductPages], &Checkpoint{
			ID:    fmt.Sprintf("%s%d", policy.CartIDPrefix, i+1),
			Value: answer,
			Type:  TypeCart,
		})
	}

	if policy.Share(GroupShopVisits) > 0 {
		groups[GroupShopVisits] = shopVisits(urls, answers, checkout)
	}

	if policy.Share(GroupProductPages) > 0 {
		// carts were appended above; product pages go first
		groups[GroupProductPages] = append(productPages(spec, replacer), groups[GroupProductPages]...)
	} else {
		delete(groups, GroupProductPages)
	}

	if err := assignWeights(groups, policy); err != nil {
		return nil, err
	}

	var all []*Checkpoint
	for _, g := range []Group{GroupAnswers, GroupShopVisits, GroupProductPages} {
		all = append(all, groups[g]...)
	}
	if err := checkUnique(all); err != nil {
		return nil, err
	}
	return New(all...), nil
}

func shopVisits(urls shops.URLs, answers []string, checkout bool) []*Checkpoint {
	var out []*Checkpoint
	for _, shop := range urls.Shops() {
		if checkout && !implicated(shop.URL, answers) {
			continue
		}
		out = append(out, &Checkpoint{
			ID:    fmt.Sprintf("visit_shop%d", shop.Index),
			Value: shop.URL,
			Type:  TypeURL,
		})
	}
	return out
}

func implicated(shopURL string, answers []string) bool {
	for _, answer := range answers {
		if strings.Contains(answer, shopURL) {
			return true
		}
	}
	return false
}

func productPages(spec taskspec.Spec, replacer *strings.Replacer) []*Checkpoint {
	shopIDs := make([]string, 0, len(spec.RelevantOffers))
	for id := range spec.RelevantOffers {
		shopIDs = append(shopIDs, id)
	}
	sort.Strings(shopIDs)

	var out []*Checkpoint
	for _, shopID := range shopIDs {
		for i, offer := range spec.RelevantOffers[shopID] {
			if strings.TrimSpace(offer.ProductURL) == "" {
				continue
			}
			id := offer.WebmallID.String()
			if id == "" {
				id = fmt.Sprintf("%s_%d", shopID, i+1)
			}
			out = append(out, &Checkpoint{
				ID:    "visit_product_" + id,
				Value: replacer.Replace(strings.TrimSpace(offer.ProductURL)),
				Type:  TypeURL,
			})
		}
	}
	return out
}

// assignWeights gives every checkpoint share/size of its group. Shares of
// empty groups are spread over the non-empty ones in proportion, so the
// checklist total stays at the policy's nominal maximum.
func assignWeights(groups map[Group][]*Checkpoint, policy WeightPolicy) error {
	var filled float64
	for g, cps := range groups {
		if len(cps) > 0 {
			filled += policy.Share(g)
		}
	}
	if filled <= 0 {
		return werrors.NewConfigError("weighting."+policy.Name, "no weighted group has checkpoints")
	}
	scale := policy.Nominal() / filled

	for g, cps := range groups {
		if len(cps) == 0 {
			continue
		}
		each := policy.Share(g) * scale / float64(len(cps))
		for _, cp := range cps {
			cp.Weight = each
		}
	}
	return nil
}

func checkUnique(cps []*Checkpoint) error {
	seen := make(map[string]bool, len(cps))
	for _, cp := range cps {
		key := string(cp.Type) + "/" + cp.ID
		if seen[key] {
			return werrors.NewConfigError("checkpoints", "duplicate %s checkpoint id %q", cp.Type, cp.ID)
		}
		seen[key] = true
	}
	return nil
}
