package domain

import "strings"

// Reply line labels requested by the correction prompt.
const (
	LabelCorrection = "✅ Correction:"
	LabelWhy        = "📚 Why:"
	LabelMotivation = "🐤 Motivation:"
)

// Chirp is the structured view of a three-line correction reply.
type Chirp struct {
	Correction string `json:"correction,omitempty"`
	Why        string `json:"why,omitempty"`
	Motivation string `json:"motivation,omitempty"`
}

// Complete reports whether every labeled line was found.
func (c Chirp) Complete() bool {
	return c.Correction != "" && c.Why != "" && c.Motivation != ""
}

// ParseChirp extracts the labeled lines from a model reply. Models do not
// always honor the format, so missing lines are left empty and the raw
// reply stays the source of truth.
func ParseChirp(reply string) Chirp {
	var c Chirp
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case c.Correction == "" && hasLabel(line, LabelCorrection):
			c.Correction = labelValue(line, LabelCorrection)
		case c.Why == "" && hasLabel(line, LabelWhy):
			c.Why = labelValue(line, LabelWhy)
		case c.Motivation == "" && hasLabel(line, LabelMotivation):
			c.Motivation = labelValue(line, LabelMotivation)
		}
	}
	return c
}

// hasLabel matches the label with or without its emoji, e.g. "Why:" and
// "2) 📚 Why:".
func hasLabel(line, label string) bool {
	return strings.Contains(line, labelWord(label))
}

func labelValue(line, label string) string {
	word := labelWord(label)
	i := strings.Index(line, word)
	return strings.TrimSpace(line[i+len(word):])
}

func labelWord(label string) string {
	if i := strings.IndexByte(label, ' '); i >= 0 {
		return label[i+1:]
	}
	return label
}
