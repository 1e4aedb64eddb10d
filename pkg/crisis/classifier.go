// Package crisis implements keyword-based crisis detection for incoming
// chat messages.
//
// Matching is deliberately substring-based with no word-boundary or negation
// handling: a false positive shows a hotline unnecessarily, a false negative
// misses someone in danger. The bias is intentional.
package crisis

import (
	"strings"

	"mindmate/pkg/models"
)

// DefaultPhrases is the stock crisis-indicator phrase table. All entries must
// be lowercase; matching lowercases the message before the substring test.
var DefaultPhrases = []string{
	"suicide",
	"self-harm",
	"i want to die",
	"kill myself",
	"help me",
	"depressed",
	"hopeless",
	"no way out",
	"end my life",
	"cant go on",
	"worthless",
}

// DefaultHotline is the stock hotline configuration (US default).
var DefaultHotline = models.HotlineInfo{
	Name:  "National Suicide Prevention Lifeline",
	Phone: "1-800-273-8255",
	URL:   "https://suicidepreventionlifeline.org/",
}

// Classifier tests message text against a fixed phrase table. The phrase
// table and hotline are read-only after construction, so a single Classifier
// is safe for concurrent use.
type Classifier struct {
	phrases []string
	hotline models.HotlineInfo
}

// NewClassifier returns a classifier using the default phrase table and
// hotline.
func NewClassifier() *Classifier {
	return NewClassifierWith(DefaultPhrases, DefaultHotline)
}

// NewClassifierWith returns a classifier with a custom phrase table and
// hotline. Phrases are lowercased defensively.
func NewClassifierWith(phrases []string, hotline models.HotlineInfo) *Classifier {
	lowered := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			lowered = append(lowered, p)
		}
	}
	return &Classifier{phrases: lowered, hotline: hotline}
}

// Classify returns the crisis verdict for a message. It never fails: text
// that cannot be meaningfully inspected (empty or whitespace-only) yields a
// no-crisis verdict so the request is never blocked here.
func (c *Classifier) Classify(text string) models.CrisisVerdict {
	if strings.TrimSpace(text) == "" {
		return models.CrisisVerdict{}
	}

	lower := strings.ToLower(text)
	for _, phrase := range c.phrases {
		if strings.Contains(lower, phrase) {
			hotline := c.hotline
			return models.CrisisVerdict{IsCrisis: true, Hotline: &hotline}
		}
	}

	return models.CrisisVerdict{}
}

// Hotline returns the configured hotline.
func (c *Classifier) Hotline() models.HotlineInfo {
	return c.hotline
}
