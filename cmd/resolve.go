package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vidurl/internal/extract"
)

var flagJSON bool

var resolveCmd = &cobra.Command{
	Use:   "resolve <post-url>",
	Short: "Resolve one post and print the result",
	Long: `Resolve one post URL with the configured resolver and print the outcome.
Output is a styled listing on a terminal and the API's JSON body otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: resolveRun,
}

func init() {
	resolveCmd.Flags().BoolVarP(&flagJSON, "json", "j", false, "Print the JSON response body")
}

func resolveRun(cmd *cobra.Command, args []string) error {
	resolver, err := extract.New(cfg)
	if err != nil {
		return fmt.Errorf("creating resolver: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.ResolveDeadline())
	defer cancel()

	out := extract.Video(ctx, resolver, args[0])

	w := cmd.OutOrStdout()
	if flagJSON || !isTerminal(w) {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	} else {
		fmt.Fprint(w, renderOutcome(out))
	}

	if !out.OK() {
		return fmt.Errorf("no usable video for %s", args[0])
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
