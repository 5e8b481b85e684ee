// Package normalisers provides implementations of the TextNormaliser
// interface. Each normaliser canonicalises utterance text for one
// flavour of corpus before it is counted and encoded.
package normalisers
