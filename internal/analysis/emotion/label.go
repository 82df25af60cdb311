package emotion

import "strings"

// Label is the closed set of affect tags the responder works with. The _high
// variants mark the same base affect paired with an intensity modifier in the
// utterance; they select a distinct response pool rather than a numeric scale.
type Label string

const (
	Joy         Label = "joy"
	JoyHigh     Label = "joy_high"
	Sadness     Label = "sadness"
	SadnessHigh Label = "sadness_high"
	Anger       Label = "anger"
	AngerHigh   Label = "anger_high"
	Fear        Label = "fear"
	FearHigh    Label = "fear_high"
	Neutral     Label = "neutral"
)

// All lists every label, base affects before their _high variants.
func All() []Label {
	return []Label{Joy, JoyHigh, Sadness, SadnessHigh, Anger, AngerHigh, Fear, FearHigh, Neutral}
}

// ParseLabel validates a raw string against the closed label set. Used to
// sanitize output from external classifiers before it enters the pipeline.
func ParseLabel(raw string) (Label, bool) {
	normalized := Label(strings.ToLower(strings.TrimSpace(raw)))
	switch normalized {
	case Joy, JoyHigh, Sadness, SadnessHigh, Anger, AngerHigh, Fear, FearHigh, Neutral:
		return normalized, true
	default:
		return "", false
	}
}

// Base strips the intensity suffix, so both joy and joy_high read as "joy".
func (l Label) Base() Label {
	return Label(strings.TrimSuffix(string(l), "_high"))
}

// Heighten returns the _high variant of a base affect. Neutral has no
// heightened form.
func (l Label) Heighten() Label {
	if l == Neutral || strings.HasSuffix(string(l), "_high") {
		return l
	}
	return Label(string(l) + "_high")
}
