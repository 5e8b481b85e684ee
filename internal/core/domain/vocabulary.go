package domain

import (
	"fmt"
	"strings"
)

// Reserved control tokens. They are appended after every
// frequency-qualified token, in this order.
const (
	// TokenPAD pads sequences to a common batch length.
	TokenPAD = "<PAD>"

	// TokenEOS terminates every answer sequence.
	TokenEOS = "<EOS>"

	// TokenOUT replaces any token absent from the vocabulary.
	TokenOUT = "<OUT>"

	// TokenSOS starts decoder input sequences.
	TokenSOS = "<SOS>"
)

// ReservedTokens returns the control tokens in assignment order.
func ReservedTokens() []string {
	return []string{TokenPAD, TokenEOS, TokenOUT, TokenSOS}
}

// Side selects the question or answer vocabulary.
type Side string

// Vocabulary sides.
const (
	SideQuestion Side = "question"
	SideAnswer   Side = "answer"
)

// IsValid returns true if the side is recognised.
func (s Side) IsValid() bool {
	return s == SideQuestion || s == SideAnswer
}

// String returns the string representation.
func (s Side) String() string {
	return string(s)
}

// Vocabulary maps tokens to dense integer IDs and back.
// IDs run from 0 to Len()-1 with no gaps. A Vocabulary is not
// modified after construction.
type Vocabulary struct {
	tokens []string
	ids    map[string]int
}

// NewVocabulary creates a vocabulary from words followed by the
// reserved tokens. Word i receives ID i. A repeated token, including
// a word that collides with a reserved token, is an error.
func NewVocabulary(words []string) (*Vocabulary, error) {
	reserved := ReservedTokens()
	v := &Vocabulary{
		tokens: make([]string, 0, len(words)+len(reserved)),
		ids:    make(map[string]int, len(words)+len(reserved)),
	}

	for _, w := range words {
		if err := v.add(w); err != nil {
			return nil, err
		}
	}
	for _, w := range reserved {
		if err := v.add(w); err != nil {
			return nil, err
		}
	}

	return v, nil
}

func (v *Vocabulary) add(token string) error {
	if id, ok := v.ids[token]; ok {
		return fmt.Errorf("%w: %q already has id %d", ErrDuplicateToken, token, id)
	}
	v.ids[token] = len(v.tokens)
	v.tokens = append(v.tokens, token)
	return nil
}

// Len returns the number of tokens, reserved tokens included.
func (v *Vocabulary) Len() int {
	return len(v.tokens)
}

// WordCount returns the number of frequency-qualified tokens.
func (v *Vocabulary) WordCount() int {
	return len(v.tokens) - len(ReservedTokens())
}

// ID returns the ID of a token.
func (v *Vocabulary) ID(token string) (int, bool) {
	id, ok := v.ids[token]
	return id, ok
}

// Has reports whether the token is in the vocabulary.
func (v *Vocabulary) Has(token string) bool {
	_, ok := v.ids[token]
	return ok
}

// Token returns the token for an ID.
func (v *Vocabulary) Token(id int) (string, bool) {
	if id < 0 || id >= len(v.tokens) {
		return "", false
	}
	return v.tokens[id], true
}

// PadID returns the ID of <PAD>.
func (v *Vocabulary) PadID() int { return v.ids[TokenPAD] }

// EOSID returns the ID of <EOS>.
func (v *Vocabulary) EOSID() int { return v.ids[TokenEOS] }

// OutID returns the ID of <OUT>.
func (v *Vocabulary) OutID() int { return v.ids[TokenOUT] }

// SOSID returns the ID of <SOS>.
func (v *Vocabulary) SOSID() int { return v.ids[TokenSOS] }

// Tokens returns a copy of the tokens in ID order.
func (v *Vocabulary) Tokens() []string {
	out := make([]string, len(v.tokens))
	copy(out, v.tokens)
	return out
}

// Inverse returns a fresh ID to token map.
func (v *Vocabulary) Inverse() map[int]string {
	inv := make(map[int]string, len(v.tokens))
	for id, tok := range v.tokens {
		inv[id] = tok
	}
	return inv
}

// Encode splits text on whitespace and maps each token to its ID.
// Tokens missing from the vocabulary map to the <OUT> ID.
func (v *Vocabulary) Encode(text string) []int {
	fields := strings.Fields(text)
	out := v.OutID()
	ids := make([]int, len(fields))
	for i, f := range fields {
		if id, ok := v.ids[f]; ok {
			ids[i] = id
		} else {
			ids[i] = out
		}
	}
	return ids
}

// Decode maps IDs back to tokens joined by single spaces.
// <PAD> IDs are dropped. Unknown IDs are an error.
func (v *Vocabulary) Decode(ids []int) (string, error) {
	pad := v.PadID()
	words := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == pad {
			continue
		}
		tok, ok := v.Token(id)
		if !ok {
			return "", fmt.Errorf("%w: token id %d out of range [0, %d)", ErrInvalidInput, id, len(v.tokens))
		}
		words = append(words, tok)
	}
	return strings.Join(words, " "), nil
}

// RestoreVocabulary rebuilds a vocabulary from its tokens in ID order,
// as returned by Tokens. The reserved tokens must come last.
func RestoreVocabulary(tokens []string) (*Vocabulary, error) {
	reserved := ReservedTokens()
	n := len(tokens) - len(reserved)
	if n < 0 {
		return nil, fmt.Errorf("%w: vocabulary has %d tokens, want at least %d",
			ErrInvalidInput, len(tokens), len(reserved))
	}
	for i, tok := range reserved {
		if tokens[n+i] != tok {
			return nil, fmt.Errorf("%w: token %d is %q, want %q", ErrInvalidInput, n+i, tokens[n+i], tok)
		}
	}
	return NewVocabulary(tokens[:n])
}
