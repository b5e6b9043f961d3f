package intent

import (
	"fmt"
	"strings"
	"unicode"
)

// Topic tags the first matching subject of a caller message.
type Topic string

const (
	TopicNone         Topic = ""
	TopicOptOut       Topic = "opt_out"
	TopicStrata       Topic = "strata"
	TopicCompletion   Topic = "completion"
	TopicFinance      Topic = "finance"
	TopicForeignBuyer Topic = "foreign_buyer"
	TopicRentalYield  Topic = "rental_yield"
)

// Classification is the classifier verdict for one message.
// When OptOut is set nothing else matters; the call must short-circuit.
type Classification struct {
	OptOut         bool
	Topic          Topic
	ScriptedAnswer string
}

// Classifier detects opt-out language and topic-specific questions with
// fixed keyword sets over a normalized message. Compliance detection must be
// deterministic and auditable, so no model is involved at any point.
type Classifier struct {
	pack KnowledgePack
}

func NewClassifier(pack KnowledgePack) *Classifier {
	return &Classifier{pack: pack}
}

// topicKeywords is checked in priority order after the opt-out check.
var topicKeywords = []struct {
	topic    Topic
	keywords []string
}{
	{TopicStrata, []string{"strata"}},
	{TopicCompletion, []string{"completion", "finish"}},
	{TopicFinance, []string{"finance", "loan"}},
	{TopicForeignBuyer, []string{"firb", "foreign buyer", "stamp duty"}},
	{TopicRentalYield, []string{"rental guarantee", "yield"}},
}

var optOutKeywords = []string{"stop", "unsubscribe"}

// Classify normalizes the message and returns the highest-priority match.
func (c *Classifier) Classify(message string) Classification {
	norm := Normalize(message)

	for _, kw := range optOutKeywords {
		if strings.Contains(norm, kw) {
			return Classification{OptOut: true, Topic: TopicOptOut}
		}
	}

	for _, t := range topicKeywords {
		for _, kw := range t.keywords {
			if strings.Contains(norm, kw) {
				return Classification{Topic: t.topic, ScriptedAnswer: c.scriptedAnswer(t.topic)}
			}
		}
	}
	return Classification{}
}

func (c *Classifier) scriptedAnswer(topic Topic) string {
	kp := c.pack
	switch topic {
	case TopicStrata:
		return fmt.Sprintf(
			"Strata at %s is approximately %s for a 1-bed, %s for a 2-bed and %s for a 3-bed.",
			kp.Project, kp.StrataPerYear["1-bed"], kp.StrataPerYear["2-bed"], kp.StrataPerYear["3-bed"],
		)
	case TopicCompletion:
		return fmt.Sprintf(
			"%s is targeting completion in %s, built by %s.",
			kp.Project, kp.CompletionTarget, kp.Builder,
		)
	case TopicFinance:
		return fmt.Sprintf(
			"Deposit terms for %s are %s. For finance and loan questions our team can introduce a broker; reach us at %s.",
			kp.Project, kp.DepositTerms, kp.HandoffEmail,
		)
	case TopicForeignBuyer:
		return fmt.Sprintf(
			"FIRB eligibility and stamp duty depend on your circumstances. Our sales team at %s can walk you through the foreign-buyer requirements for %s.",
			kp.HandoffEmail, kp.Suburb,
		)
	case TopicRentalYield:
		return fmt.Sprintf(
			"We don't offer rental guarantees. For current rental appraisals and yield estimates in %s, contact %s.",
			kp.Suburb, kp.HandoffEmail,
		)
	default:
		return ""
	}
}

// Normalize case-folds, replaces punctuation with spaces, and collapses
// whitespace, so "STOP!!" and "stop" match identically.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
