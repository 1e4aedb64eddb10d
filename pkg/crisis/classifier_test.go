package crisis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mindmate/pkg/models"
)

func TestClassifier_DetectsPhrases(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name string
		text string
	}{
		{"exact phrase", "I want to kill myself"},
		{"uppercase", "I FEEL HOPELESS"},
		{"mixed case", "i'm so DePrEsSeD lately"},
		{"embedded in sentence", "honestly there is no way out for me"},
		{"negated phrasing still matches", "I don't want to kill myself"},
		{"spurious substring match", "no way out of this maze"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := c.Classify(tt.text)
			assert.True(t, verdict.IsCrisis)
			if assert.NotNil(t, verdict.Hotline) {
				assert.Equal(t, DefaultHotline, *verdict.Hotline)
			}
		})
	}
}

func TestClassifier_NoCrisis(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name string
		text string
	}{
		{"benign message", "I had a pretty good day today"},
		{"stress without crisis phrase", "I'm stressed about my relationship"},
		{"empty", ""},
		{"whitespace only", "   \t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := c.Classify(tt.text)
			assert.False(t, verdict.IsCrisis)
			assert.Nil(t, verdict.Hotline)
		})
	}
}

func TestClassifier_CustomPhrases(t *testing.T) {
	hotline := models.HotlineInfo{Name: "Test Line", Phone: "000", URL: "https://example.com"}
	c := NewClassifierWith([]string{"  Bad Phrase  ", ""}, hotline)

	verdict := c.Classify("this contains a BAD PHRASE indeed")
	assert.True(t, verdict.IsCrisis)
	assert.Equal(t, "Test Line", verdict.Hotline.Name)

	// The empty entry must not match everything.
	assert.False(t, c.Classify("completely fine").IsCrisis)
}

func TestClassifier_VerdictIsIndependentCopy(t *testing.T) {
	c := NewClassifier()

	verdict := c.Classify("suicide")
	verdict.Hotline.Name = "mutated"

	assert.Equal(t, "National Suicide Prevention Lifeline", c.Hotline().Name)
}
