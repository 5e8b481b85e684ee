// Package dialogue normalises English movie-dialogue utterances.
package dialogue

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/chatprep/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.TextNormaliser = (*Normaliser)(nil)

// rule is a literal substitution.
type rule struct {
	from string
	to   string
}

// contractions are applied in order; later rules see the output of
// earlier ones, so the specific 's forms must precede the generic one.
var contractions = []rule{
	{"i'm", "i am"},
	{"he's", "he is"},
	{"she's", "she is"},
	{"what's", "what is"},
	{"where's", "where is"},
	{"'ll", " will"},
	{"'ve", " have"},
	{"'s", " is"},
	{"'re", " are"},
	{"'d", " would"},
	{"won't", "will not"},
	{"can't", "cannot"},
}

// punctuation is deleted outright, not replaced with a space.
var punctuation = regexp.MustCompile(`[-()"#/@;:<>{}+=|.?,^%]`)

// Normaliser lowercases text, expands contractions and strips punctuation.
type Normaliser struct{}

// New creates a new dialogue normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Name returns the normaliser name.
func (n *Normaliser) Name() string {
	return "dialogue"
}

// Normalise returns the canonical form of text.
func (n *Normaliser) Normalise(text string) string {
	text = strings.ToLower(text)
	for _, r := range contractions {
		text = strings.ReplaceAll(text, r.from, r.to)
	}
	return punctuation.ReplaceAllString(text, "")
}

// NormaliseAll normalises every text, preserving order.
func (n *Normaliser) NormaliseAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = n.Normalise(t)
	}
	return out
}
