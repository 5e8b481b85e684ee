package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/chatprep/internal/core/domain"
	"github.com/custodia-labs/chatprep/internal/core/ports/driven"
)

// datasetStore implements driven.DatasetStore.
type datasetStore struct {
	store *Store
}

var _ driven.DatasetStore = (*datasetStore)(nil)

const datasetColumns = `id, lines_hash, conversations_hash, threshold, min_question_length,
	max_question_length, utterances, threads, skipped_records, pairs, bucketed_pairs,
	dropped_pairs, vocabulary_size, created_at`

// Save stores a dataset, replacing any dataset with the same key.
func (s *datasetStore) Save(ctx context.Context, ds *domain.Dataset) error {
	if ds == nil || ds.ID == "" || ds.QuestionVocab == nil || ds.AnswerVocab == nil {
		return domain.ErrInvalidInput
	}
	createdAt := ds.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	digest := ds.Key.String()
	if _, err := tx.ExecContext(ctx, `DELETE FROM datasets WHERE key_digest = ? OR id = ?`, digest, ds.ID); err != nil {
		return fmt.Errorf("replacing dataset: %w", err)
	}

	st := ds.Stats
	_, err = tx.ExecContext(ctx, `
		INSERT INTO datasets (`+datasetColumns+`, key_digest)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, ds.ID, ds.Key.LinesHash, ds.Key.ConversationsHash, ds.Key.Threshold,
		ds.Key.MinQuestionLength, ds.Key.MaxQuestionLength,
		st.Utterances, st.Threads, st.SkippedRecords, st.Pairs, st.BucketedPairs,
		st.DroppedPairs, st.VocabularySize, createdAt.UTC(), digest)
	if err != nil {
		return fmt.Errorf("saving dataset: %w", err)
	}

	if err := saveTokens(ctx, tx, ds.ID, domain.SideQuestion, ds.QuestionVocab); err != nil {
		return err
	}
	if err := saveTokens(ctx, tx, ds.ID, domain.SideAnswer, ds.AnswerVocab); err != nil {
		return err
	}
	if err := savePairs(ctx, tx, ds.ID, ds.Pairs()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func saveTokens(ctx context.Context, tx *sql.Tx, datasetID string, side domain.Side, vocab *domain.Vocabulary) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vocabulary_tokens (dataset_id, side, token_id, token)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for id, token := range vocab.Tokens() {
		if _, err := stmt.ExecContext(ctx, datasetID, side.String(), id, token); err != nil {
			return fmt.Errorf("saving %s token: %w", side, err)
		}
	}
	return nil
}

func savePairs(ctx context.Context, tx *sql.Tx, datasetID string, pairs []domain.EncodedPair) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO encoded_pairs (dataset_id, position, pair_index, question_length, question, answer)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for pos, p := range pairs {
		if _, err := stmt.ExecContext(ctx, datasetID, pos, p.Index, len(p.Question),
			intSliceToBytes(p.Question), intSliceToBytes(p.Answer)); err != nil {
			return fmt.Errorf("saving pair: %w", err)
		}
	}
	return nil
}

// Get retrieves the dataset for a key.
func (s *datasetStore) Get(ctx context.Context, key domain.DatasetKey) (*domain.Dataset, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+datasetColumns+` FROM datasets WHERE key_digest = ?`, key.String())
	summary, err := scanSummary(row)
	if err != nil {
		return nil, err
	}

	ds := &domain.Dataset{
		ID:        summary.ID,
		Key:       summary.Key,
		Stats:     summary.Stats,
		CreatedAt: summary.CreatedAt,
	}

	if ds.QuestionVocab, err = s.loadVocabulary(ctx, ds.ID, domain.SideQuestion); err != nil {
		return nil, err
	}
	if ds.AnswerVocab, err = s.loadVocabulary(ctx, ds.ID, domain.SideAnswer); err != nil {
		return nil, err
	}

	pairs, err := s.loadPairs(ctx, ds.ID)
	if err != nil {
		return nil, err
	}
	ds.Buckets = domain.GroupBuckets(pairs)

	return ds, nil
}

func (s *datasetStore) loadVocabulary(ctx context.Context, datasetID string, side domain.Side) (*domain.Vocabulary, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT token FROM vocabulary_tokens
		WHERE dataset_id = ? AND side = ?
		ORDER BY token_id
	`, datasetID, side.String())
	if err != nil {
		return nil, fmt.Errorf("loading %s vocabulary: %w", side, err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("scanning token: %w", err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	vocab, err := domain.RestoreVocabulary(tokens)
	if err != nil {
		return nil, fmt.Errorf("restoring %s vocabulary: %w", side, err)
	}
	return vocab, nil
}

func (s *datasetStore) loadPairs(ctx context.Context, datasetID string) ([]domain.EncodedPair, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT pair_index, question, answer FROM encoded_pairs
		WHERE dataset_id = ?
		ORDER BY position
	`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("loading pairs: %w", err)
	}
	defer rows.Close()

	var pairs []domain.EncodedPair
	for rows.Next() {
		var p domain.EncodedPair
		var question, answer []byte
		if err := rows.Scan(&p.Index, &question, &answer); err != nil {
			return nil, fmt.Errorf("scanning pair: %w", err)
		}
		p.Question = bytesToIntSlice(question)
		p.Answer = bytesToIntSlice(answer)
		pairs = append(pairs, p)
	}
	return pairs, rows.Err()
}

// List returns summaries of all stored datasets, newest first.
func (s *datasetStore) List(ctx context.Context) ([]domain.DatasetSummary, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+datasetColumns+` FROM datasets ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}
	defer rows.Close()

	var summaries []domain.DatasetSummary
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, rows.Err()
}

// Delete removes a dataset by ID. Tokens and pairs cascade.
func (s *datasetStore) Delete(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting dataset: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting dataset: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Helper Functions ====================

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(row rowScanner) (*domain.DatasetSummary, error) {
	var summary domain.DatasetSummary
	var createdAt sql.NullTime
	k := &summary.Key
	st := &summary.Stats
	err := row.Scan(&summary.ID, &k.LinesHash, &k.ConversationsHash, &k.Threshold,
		&k.MinQuestionLength, &k.MaxQuestionLength,
		&st.Utterances, &st.Threads, &st.SkippedRecords, &st.Pairs, &st.BucketedPairs,
		&st.DroppedPairs, &st.VocabularySize, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning dataset: %w", err)
	}
	if createdAt.Valid {
		summary.CreatedAt = createdAt.Time
	}
	return &summary, nil
}

// intSliceToBytes converts token IDs to little-endian int32s for storage.
func intSliceToBytes(ids []int) []byte {
	if len(ids) == 0 {
		return nil
	}
	buf := make([]byte, len(ids)*4)
	for i, id := range ids {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(int32(id)))
	}
	return buf
}

// bytesToIntSlice converts a stored blob back to token IDs.
func bytesToIntSlice(data []byte) []int {
	if len(data) == 0 {
		return nil
	}
	ids := make([]int, len(data)/4)
	for i := range ids {
		ids[i] = int(int32(binary.LittleEndian.Uint32(data[i*4:])))
	}
	return ids
}
