package emotion

import "strings"

// keywordGroup binds a base affect to its indicator keywords. Group order is
// significant: the first group containing a match decides the label, so a text
// mentioning both sadness and joy words is treated as sad.
type keywordGroup struct {
	label    Label
	keywords []string
}

var keywordGroups = []keywordGroup{
	{Sadness, []string{"sad", "lonely", "depressed", "unhappy", "miserable", "heartbroken", "hopeless", "crying"}},
	{Joy, []string{"happy", "great", "excited", "glad", "wonderful", "joyful", "amazing", "delighted"}},
	{Anger, []string{"angry", "frustrated", "annoyed", "furious", "irritated", "fed up"}},
	{Fear, []string{"scared", "afraid", "anxious", "worried", "nervous", "terrified", "panicking"}},
}

// intensityModifiers are matched as whole words so that "so" does not fire on
// "sorry" or "lonesome".
var intensityModifiers = []string{
	"extremely", "so", "very", "really", "totally",
	"completely", "overwhelming", "overwhelmingly", "incredibly",
}

// Detect runs the deterministic lexicon classifier: case-fold, find the first
// keyword group with a substring match, then upgrade to the _high variant when
// an intensity modifier appears anywhere in the text. Falls through to Neutral.
func Detect(text string) Label {
	normalized := strings.ToLower(text)
	for _, group := range keywordGroups {
		for _, word := range group.keywords {
			if strings.Contains(normalized, word) {
				if containsIntensityModifier(normalized) {
					return group.label.Heighten()
				}
				return group.label
			}
		}
	}
	return Neutral
}

func containsIntensityModifier(normalized string) bool {
	for _, field := range strings.Fields(normalized) {
		word := strings.Trim(field, ".,!?;:'\"()")
		for _, modifier := range intensityModifiers {
			if word == modifier {
				return true
			}
		}
	}
	return false
}
