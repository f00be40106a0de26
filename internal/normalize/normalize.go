// Package normalize cleans raw transcribed text before interpretation.
// Child speech arrives noisy: recognizer artifacts, filler words, stammered
// repeats, and single-word fragments. Everything here is a pure string
// transform that passes unrecognized input through unchanged; nothing in
// this package can fail.
package normalize

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	bracketNote    = regexp.MustCompile(`\[[^\]]*\]`)
	parenNote      = regexp.MustCompile(`\([^)]*\)`)
	punctuationRun = regexp.MustCompile(`[.,!?;:]{2,}`)
	onlyPunct      = regexp.MustCompile(`^[.,!?;:'"()\[\]{}\-—…]+$`)
)

// fillerTokens are discarded wholesale before repetition removal.
var fillerTokens = map[string]bool{
	"um":  true,
	"uh":  true,
	"er":  true,
	"erm": true,
	"hmm": true,
	"ah":  true,
}

// singleWordCommands completes an elliptical one-word utterance into the
// full command a child most likely meant.
var singleWordCommands = map[string]string{
	"circle":    "draw a circle",
	"round":     "draw a circle",
	"square":    "draw a square",
	"rectangle": "draw a rectangle",
	"box":       "draw a rectangle",
	"line":      "draw a line",
	"dot":       "draw a point",
	"point":     "draw a point",
	"sun":       "draw a sun",
	"eyes":      "draw eyes",
}

// shortUtteranceLimit is the length under which a verbless utterance gets
// the default draw verb prefixed.
const shortUtteranceLimit = 12

// Clean trims the text, collapses whitespace runs, strips bracketed and
// parenthetical recognizer annotations, and collapses repeated sentence
// punctuation. Empty or whitespace-only input yields the empty string.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	cleaned := whitespaceRun.ReplaceAllString(strings.TrimSpace(text), " ")
	cleaned = bracketNote.ReplaceAllString(cleaned, "")
	cleaned = parenNote.ReplaceAllString(cleaned, "")
	cleaned = punctuationRun.ReplaceAllStringFunc(cleaned, func(run string) string {
		return run[:1]
	})
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(cleaned, " "))
}

// RemoveRepetition drops filler tokens, then collapses runs of identical
// consecutive words, keeping the first occurrence of each run.
func RemoveRepetition(text string) string {
	if text == "" {
		return ""
	}
	words := strings.Fields(text)
	out := make([]string, 0, len(words))
	last := ""
	for _, w := range words {
		if fillerTokens[strings.ToLower(strings.Trim(w, ".,!?"))] {
			continue
		}
		if w == last && len(out) > 0 {
			continue
		}
		out = append(out, w)
		last = w
	}
	return strings.Join(out, " ")
}

// CompleteSentence heuristically completes elliptical utterances. A lone
// dictionary noun becomes its canonical command; a short phrase with no
// draw or add verb gets the default draw verb prefixed. Anything else
// passes through unchanged.
func CompleteSentence(text string) string {
	if text == "" {
		return ""
	}
	completed := text

	words := strings.Fields(completed)
	if len(words) == 1 {
		if full, ok := singleWordCommands[strings.ToLower(words[0])]; ok {
			return full
		}
	}

	lower := strings.ToLower(completed)
	if !strings.Contains(lower, "draw") && !strings.Contains(lower, "add") {
		if len(completed) <= shortUtteranceLimit {
			completed = "draw " + completed
		}
	}
	return completed
}

// IsValid rejects empty text and text consisting solely of punctuation.
// This is the final gate before text enters the pipeline.
func IsValid(text string) bool {
	compact := strings.Join(strings.Fields(text), "")
	if compact == "" {
		return false
	}
	return !onlyPunct.MatchString(compact)
}

// Options selects which preprocessing steps run. The zero value runs all
// of them, which is what the pipeline wants.
type Options struct {
	SkipRepetition bool
	SkipCompletion bool
	SkipReferences bool
	RecentShapes   []string
}

// Preprocess applies the full chain: clean, remove repetition, complete
// the sentence, resolve references.
func Preprocess(text string, opts Options) string {
	if text == "" {
		return ""
	}
	processed := Clean(text)
	if !opts.SkipRepetition {
		processed = RemoveRepetition(processed)
	}
	if !opts.SkipCompletion {
		processed = CompleteSentence(processed)
	}
	if !opts.SkipReferences {
		processed = ResolveReferences(processed, opts.RecentShapes)
	}
	return strings.TrimSpace(processed)
}
