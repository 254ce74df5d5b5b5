// Package feature defines the closed set of AI operations the keyboard offers
// and the static catalogs (tones, languages) their parameters draw from.
package feature

import (
	"fmt"
	"strings"
)

// Kind identifies one feature panel. The zero value means "no panel".
type Kind int

const (
	None Kind = iota
	GrammarCheck
	ToneChange
	AskAI
	Translate
	Reply
	ContinueText
	FindSynonyms
)

// All returns every selectable feature in feature-bar order.
func All() []Kind {
	return []Kind{GrammarCheck, ToneChange, AskAI, Translate, Reply, ContinueText, FindSynonyms}
}

// String returns the stable identifier used in config files and logs.
func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case GrammarCheck:
		return "grammar-check"
	case ToneChange:
		return "tone-change"
	case AskAI:
		return "ask-ai"
	case Translate:
		return "translate"
	case Reply:
		return "reply"
	case ContinueText:
		return "continue-text"
	case FindSynonyms:
		return "find-synonyms"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Title returns the human-facing feature name.
func (k Kind) Title() string {
	switch k {
	case GrammarCheck:
		return "Check Grammar"
	case ToneChange:
		return "Change Tone"
	case AskAI:
		return "Ask AI"
	case Translate:
		return "Translate"
	case Reply:
		return "Reply"
	case ContinueText:
		return "Continue"
	case FindSynonyms:
		return "Synonyms"
	default:
		return ""
	}
}

// Emoji returns the feature-bar glyph.
func (k Kind) Emoji() string {
	switch k {
	case GrammarCheck:
		return "✅"
	case ToneChange:
		return "🎭"
	case AskAI:
		return "✨"
	case Translate:
		return "🌐"
	case Reply:
		return "💬"
	case ContinueText:
		return "✍️"
	case FindSynonyms:
		return "📖"
	default:
		return ""
	}
}

// Valid reports whether k is one of the selectable features.
func (k Kind) Valid() bool {
	return k >= GrammarCheck && k <= FindSynonyms
}

// ParseKind resolves the String() form (case-insensitive) back to a Kind.
func ParseKind(s string) (Kind, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, k := range All() {
		if k.String() == want {
			return k, nil
		}
	}
	return None, fmt.Errorf("unknown feature %q", s)
}

// ApplyMode controls how a result is written back over the captured span.
type ApplyMode int

const (
	// Replace writes the result in place of the captured span.
	Replace ApplyMode = iota
	// Append keeps the captured span and writes the result after it.
	Append
)

// ApplyMode returns how results of k are committed.
func (k Kind) ApplyMode() ApplyMode {
	if k == ContinueText {
		return Append
	}
	return Replace
}

// Parameter keys understood by the AI boundary.
const (
	ParamTone     = "tone"
	ParamLanguage = "language"
)

// RequiredParam returns the parameter key k cannot run without, or "".
func (k Kind) RequiredParam() string {
	switch k {
	case ToneChange:
		return ParamTone
	case Translate:
		return ParamLanguage
	default:
		return ""
	}
}

// Guidance is the static message shown when there is no text to operate on.
func Guidance(k Kind) string {
	switch k {
	case GrammarCheck:
		return "No text selected to check."
	case ToneChange:
		return "Select text or place cursor to change tone."
	case AskAI:
		return "Select text or place cursor to ask AI."
	case Translate:
		return "Select text or place cursor to translate."
	case Reply:
		return "Select or copy text to reply."
	case ContinueText:
		return "Select text or place the cursor to continue."
	case FindSynonyms:
		return "Please select a text to find synonyms."
	default:
		return ""
	}
}
