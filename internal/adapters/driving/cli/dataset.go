package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chatprep/internal/core/domain"
)

const (
	flagSide  = "side"
	flagLimit = "limit"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <text...>",
	Short: "Encode text with a dataset vocabulary",
	Long: `Normalises the text and prints its token IDs. Unknown words map to <OUT>.
Answer-side text is terminated with <EOS>.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEncode,
}

var decodeCmd = &cobra.Command{
	Use:   "decode <id...>",
	Short: "Decode token IDs with a dataset vocabulary",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDecode,
}

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "List vocabulary tokens and IDs",
	Args:  cobra.NoArgs,
	RunE:  runVocab,
}

var bucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "Show the question length histogram",
	Args:  cobra.NoArgs,
	RunE:  runBuckets,
}

func init() {
	for _, cmd := range []*cobra.Command{encodeCmd, decodeCmd, vocabCmd, bucketsCmd} {
		addPipelineFlags(cmd)
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{encodeCmd, decodeCmd, vocabCmd} {
		cmd.Flags().String(flagSide, string(domain.SideQuestion), "Vocabulary side (question|answer)")
	}
	vocabCmd.Flags().Int(flagLimit, 0, "Show at most this many tokens (0 for all)")
}

func sideFlag(cmd *cobra.Command) (domain.Side, error) {
	value, err := cmd.Flags().GetString(flagSide)
	if err != nil {
		return "", err
	}
	side := domain.Side(value)
	if !side.IsValid() {
		return "", fmt.Errorf("invalid side %q: must be question or answer", value)
	}
	return side, nil
}

func runEncode(cmd *cobra.Command, args []string) error {
	side, err := sideFlag(cmd)
	if err != nil {
		return err
	}
	ds, err := loadDataset(cmd)
	if err != nil {
		return err
	}

	ids, err := datasetService.Encode(ds, side, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("encode failed: %w", err)
	}
	cmd.Println(formatIDs(ids))
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	side, err := sideFlag(cmd)
	if err != nil {
		return err
	}

	ids := make([]int, len(args))
	for i, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid token id %q", arg)
		}
		ids[i] = id
	}

	ds, err := loadDataset(cmd)
	if err != nil {
		return err
	}

	text, err := datasetService.Decode(ds, side, ids)
	if err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	cmd.Println(text)
	return nil
}

func runVocab(cmd *cobra.Command, _ []string) error {
	side, err := sideFlag(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt(flagLimit)

	ds, err := loadDataset(cmd)
	if err != nil {
		return err
	}
	vocab, err := ds.Vocabulary(side)
	if err != nil {
		return err
	}

	tokens := vocab.Tokens()
	if limit > 0 && limit < len(tokens) {
		tokens = tokens[:limit]
	}
	for id, token := range tokens {
		cmd.Printf("%d\t%s\n", id, token)
	}
	if len(tokens) < vocab.Len() {
		cmd.Printf("... %d more\n", vocab.Len()-len(tokens))
	}
	return nil
}

func runBuckets(cmd *cobra.Command, _ []string) error {
	ds, err := loadDataset(cmd)
	if err != nil {
		return err
	}
	writeHistogram(cmd.OutOrStdout(), StylesFor(cmd.OutOrStdout()), ds.Buckets)
	return nil
}
