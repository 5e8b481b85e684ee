package file

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/custodia-labs/chatprep/internal/core/domain"
	"github.com/custodia-labs/chatprep/internal/core/ports/driven"
	"github.com/custodia-labs/chatprep/internal/logger"
)

// Ensure Reader implements the interface.
var _ driven.CorpusReader = (*Reader)(nil)

// Delimiter separates fields within a record.
const Delimiter = " +++$+++ "

const (
	utteranceFields = 5
	threadFields    = 4
)

// Reader loads corpus files from the local filesystem.
type Reader struct{}

// NewReader creates a new corpus reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadUtterances loads the utterance file keyed by line ID.
// A line without exactly five fields is skipped and counted.
// A repeated ID keeps the last record seen.
func (r *Reader) ReadUtterances(ctx context.Context, path string) (map[string]domain.Utterance, domain.LoadStats, error) {
	records, err := readRecords(ctx, path)
	if err != nil {
		return nil, domain.LoadStats{}, err
	}

	var stats domain.LoadStats
	utterances := make(map[string]domain.Utterance, len(records))
	for n, record := range records {
		stats.Lines++
		fields := strings.Split(record, Delimiter)
		if len(fields) != utteranceFields {
			stats.Skipped++
			logger.Debug("%s:%d: %v: %d fields", path, n+1, domain.ErrMalformedRecord, len(fields))
			continue
		}
		utterances[fields[0]] = domain.Utterance{
			ID:          fields[0],
			SpeakerID:   fields[1],
			MovieID:     fields[2],
			SpeakerName: fields[3],
			Text:        fields[4],
		}
	}

	return utterances, stats, nil
}

// ReadThreads loads the thread file in file order. The line ID list is
// taken from the last field. Blank lines are skipped.
func (r *Reader) ReadThreads(ctx context.Context, path string) ([]domain.Thread, domain.LoadStats, error) {
	records, err := readRecords(ctx, path)
	if err != nil {
		return nil, domain.LoadStats{}, err
	}

	var stats domain.LoadStats
	threads := make([]domain.Thread, 0, len(records))
	for n, record := range records {
		if strings.TrimSpace(record) == "" {
			continue
		}
		stats.Lines++
		fields := strings.Split(record, Delimiter)
		if len(fields) < 2 {
			stats.Skipped++
			logger.Debug("%s:%d: %v: no line ID list", path, n+1, domain.ErrMalformedRecord)
			continue
		}

		thread := domain.Thread{LineIDs: ParseIDList(fields[len(fields)-1])}
		if len(fields) == threadFields {
			thread.SpeakerA = fields[0]
			thread.SpeakerB = fields[1]
			thread.MovieID = fields[2]
		}
		threads = append(threads, thread)
	}

	return threads, stats, nil
}

// Fingerprint returns the hex SHA-256 of the file contents.
func (r *Reader) Fingerprint(ctx context.Context, path string) (string, error) {
	data, err := readFile(ctx, path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// ParseIDList parses a list literal such as "['L1', 'L2']".
// Surrounding brackets, whitespace and quotes are ignored and empty
// items are dropped.
func ParseIDList(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	var ids []string
	for _, item := range strings.Split(s, ",") {
		item = strings.Trim(strings.TrimSpace(item), `'"`)
		item = strings.TrimSpace(item)
		if item != "" {
			ids = append(ids, item)
		}
	}
	return ids
}

// readRecords reads and decodes a file and splits it into lines.
// The empty record after a final newline is dropped.
func readRecords(ctx context.Context, path string) ([]string, error) {
	data, err := readFile(ctx, path)
	if err != nil {
		return nil, err
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	records := strings.Split(string(decoded), "\n")
	if n := len(records); n > 0 && records[n-1] == "" {
		records = records[:n-1]
	}
	return records, nil
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
