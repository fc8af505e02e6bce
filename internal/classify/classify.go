// Package classify decides, per catalog entry, whether translation is
// required, skipped, or already satisfied by a prior run. The rule order
// guarantees idempotence: a second run against the same progress file
// issues no new translation calls for completed entries.
package classify

import (
	"fmt"
	"regexp"
	"unicode"

	"github.com/louanfontenele/LocoTranslator/internal/catalog"
	"github.com/louanfontenele/LocoTranslator/internal/progress"
)

// Decision is the classifier's verdict for an entry.
type Decision int

const (
	// Translate means the entry must go through the translation driver.
	Translate Decision = iota
	// Skip means the entry is structurally non-translatable.
	Skip
	// Reuse means a completed result already exists in the progress store.
	Reuse
)

func (d Decision) String() string {
	switch d {
	case Skip:
		return "skip"
	case Reuse:
		return "reuse"
	default:
		return "translate"
	}
}

// DefaultPlaceholderPatterns are the token patterns stripped before the
// "any letters left?" check: printf-style verbs, brace templating, and
// shell-style variable references. Overridable via the
// classify.placeholder_patterns config key.
var DefaultPlaceholderPatterns = []string{
	`%[-+ #0-9.*]*[a-zA-Z]`,
	`\{[a-zA-Z0-9_.]*\}`,
	`\$\{?[A-Za-z0-9_]+\}?`,
}

// Classifier applies the skip/reuse/translate rules.
type Classifier struct {
	patterns []*regexp.Regexp
}

// New compiles a classifier from placeholder patterns. An empty slice
// selects DefaultPlaceholderPatterns.
func New(patterns []string) (*Classifier, error) {
	if len(patterns) == 0 {
		patterns = DefaultPlaceholderPatterns
	}
	c := &Classifier{}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid placeholder pattern %q: %w", p, err)
		}
		c.patterns = append(c.patterns, re)
	}
	return c, nil
}

// Classify applies the rules in order: empty id, placeholder-only id,
// completed store record, otherwise translate.
func (c *Classifier) Classify(e *catalog.Entry, store *progress.Store) Decision {
	if e.MsgID == "" {
		return Skip
	}
	if c.placeholderOnly(e.MsgID) {
		return Skip
	}
	if store != nil && store.Done(progress.Key(e.MsgID, e.MsgIDPlural)) {
		return Reuse
	}
	return Translate
}

// placeholderOnly reports whether the text carries no translatable
// content once placeholder tokens are stripped.
func (c *Classifier) placeholderOnly(text string) bool {
	stripped := text
	for _, re := range c.patterns {
		stripped = re.ReplaceAllString(stripped, "")
	}
	for _, r := range stripped {
		if unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
