package domain

// Utterance is one line of dialogue from the utterance file.
type Utterance struct {
	// ID is the line identifier (e.g. "L1045").
	ID string

	// SpeakerID identifies the character who spoke the line.
	SpeakerID string

	// MovieID identifies the movie the line belongs to.
	MovieID string

	// SpeakerName is the character's display name.
	SpeakerName string

	// Text is the raw utterance text.
	Text string
}

// Thread is one recorded exchange between two characters.
type Thread struct {
	// SpeakerA is the first character in the exchange.
	SpeakerA string

	// SpeakerB is the second character in the exchange.
	SpeakerB string

	// MovieID identifies the movie the exchange belongs to.
	MovieID string

	// LineIDs are the utterance IDs in chronological order.
	LineIDs []string
}

// LoadStats describes what a corpus read produced.
type LoadStats struct {
	// Lines is the number of records read from the file.
	Lines int

	// Skipped is the number of malformed records dropped.
	Skipped int
}

// Corpus is the loaded utterance map together with its threads.
type Corpus struct {
	Utterances map[string]Utterance
	Threads    []Thread
	Stats      LoadStats
}

// Text returns the text for a line ID.
func (c *Corpus) Text(id string) (string, bool) {
	u, ok := c.Utterances[id]
	if !ok {
		return "", false
	}
	return u.Text, true
}

// Pair is a question and the answer that follows it in a thread.
type Pair struct {
	QuestionID string
	AnswerID   string
	Question   string
	Answer     string
}
