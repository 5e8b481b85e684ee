package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/chatprep/internal/core/domain"
)

// histogramWidth is the longest bar drawn by the bucket histogram.
const histogramWidth = 40

// writeSummary prints the dataset report shown after prepare.
func writeSummary(w io.Writer, st *Styles, ds *domain.Dataset) {
	s := ds.Stats
	rows := [][2]string{
		{"Dataset", ds.ID},
		{"Utterances", fmt.Sprintf("%d (%d malformed records skipped)", s.Utterances, s.SkippedRecords)},
		{"Threads", fmt.Sprintf("%d", s.Threads)},
		{"Pairs", fmt.Sprintf("%d (%d bucketed, %d out of range)", s.Pairs, s.BucketedPairs, s.DroppedPairs)},
		{"Vocabulary", fmt.Sprintf("%d tokens per side, threshold %d", s.VocabularySize, ds.Key.Threshold)},
		{"Buckets", fmt.Sprintf("%d (question length %d-%d)",
			len(ds.Buckets), ds.Key.MinQuestionLength, ds.Key.MaxQuestionLength)},
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, st.Render(st.Title, "Dataset prepared"))
	for _, r := range rows {
		lines = append(lines, labelled(st, r[0], r[1]))
	}
	body := strings.Join(lines, "\n")

	if st.Plain() {
		fmt.Fprintln(w, body)
		return
	}
	fmt.Fprintln(w, st.Box.Render(body))
}

func labelled(st *Styles, label, value string) string {
	if st.Plain() {
		return fmt.Sprintf("  %-12s %s", label+":", value)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, st.Label.Render(label), value)
}

// writeHistogram prints one line per bucket with a bar scaled to the
// largest bucket.
func writeHistogram(w io.Writer, st *Styles, buckets []domain.Bucket) {
	if len(buckets) == 0 {
		fmt.Fprintln(w, "No buckets.")
		return
	}

	largest := 0
	for _, b := range buckets {
		if len(b.Pairs) > largest {
			largest = len(b.Pairs)
		}
	}

	fmt.Fprintln(w, st.Render(st.Title, "Length  Pairs"))
	for _, b := range buckets {
		n := len(b.Pairs)
		width := n * histogramWidth / largest
		if width == 0 && n > 0 {
			width = 1
		}
		bar := st.Render(st.Bar, strings.Repeat("#", width))
		fmt.Fprintf(w, "%6d  %5d  %s\n", b.QuestionLength, n, bar)
	}
}

// formatIDs joins token IDs with single spaces.
func formatIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, " ")
}
