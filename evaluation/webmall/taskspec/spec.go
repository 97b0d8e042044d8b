package taskspec

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Answer types understood by the checklist builder.
const (
	AnswerString   = "string"
	AnswerCheckout = "checkout"
)

// Spec is the declarative description of one benchmark task.
type Spec struct {
	ID             string             `json:"id" yaml:"id"`
	Task           string             `json:"task,omitempty" yaml:"task,omitempty"`
	Category       string             `json:"category,omitempty" yaml:"category,omitempty"`
	Instruction    string             `json:"instruction,omitempty" yaml:"instruction,omitempty"`
	Weighting      string             `json:"weighting,omitempty" yaml:"weighting,omitempty"`
	CorrectAnswer  *CorrectAnswer     `json:"correct_answer" yaml:"correct_answer"`
	RelevantOffers map[string][]Offer `json:"relevant_offers,omitempty" yaml:"relevant_offers,omitempty"`
	UserDetails    map[string]any     `json:"user_details,omitempty" yaml:"user_details,omitempty"`
	PaymentInfo    map[string]any     `json:"payment_info,omitempty" yaml:"payment_info,omitempty"`
}

// CorrectAnswer lists the targets an agent must hit.
type CorrectAnswer struct {
	Type    string   `json:"type,omitempty" yaml:"type,omitempty"`
	Answers []string `json:"answers" yaml:"answers"`
}

// AnswerType returns the declared answer type, defaulting to "string".
func (s Spec) AnswerType() string {
	if s.CorrectAnswer == nil {
		return AnswerString
	}
	t := strings.TrimSpace(s.CorrectAnswer.Type)
	if t == "" {
		return AnswerString
	}
	return t
}

// Offer is one product page an agent is expected to look at.
type Offer struct {
	ProductURL string `json:"product_url,omitempty" yaml:"product_url,omitempty"`
	WebmallID  FlexID `json:"webmall_id,omitempty" yaml:"webmall_id,omitempty"`
}

// FlexID accepts both string and numeric identifiers in task files.
type FlexID string

func (id *FlexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("webmall_id: %w", err)
	}
	*id = FlexID(n.String())
	return nil
}

func (id *FlexID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("webmall_id: expected scalar, got kind %d", node.Kind)
	}
	*id = FlexID(node.Value)
	return nil
}

func (id FlexID) String() string {
	return string(id)
}
