package usecase

import (
	"strings"

	"chirpify/internal/domain"
)

const sentencePlaceholder = "{user_sentence}"

var promptTemplate = strings.Join([]string{
	"You are Chirpify 🐤 — a friendly grammar coach.",
	"Reply in EXACTLY three lines:",
	"",
	"1) " + domain.LabelCorrection + " <corrected sentence> + one friendly emoji",
	"2) " + domain.LabelWhy + " <one-sentence grammar reason>",
	"3) " + domain.LabelMotivation + " <short upbeat encouragement with a bird vibe>",
	"",
	`User sentence: "` + sentencePlaceholder + `"`,
	"",
}, "\n")

// composePrompt places the sentence into the template in one positional
// pass; the inserted text is never rescanned.
func composePrompt(sentence string) string {
	i := strings.Index(promptTemplate, sentencePlaceholder)
	return promptTemplate[:i] + sentence + promptTemplate[i+len(sentencePlaceholder):]
}
