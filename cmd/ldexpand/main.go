// Command ldexpand expands a JSON-LD document and prints the result.
//
// It reads the document from the file given as its argument, or from stdin
// when none is given.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/irifold/expanse"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		cache   bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "ldexpand [file]",
		Short: "Expand a JSON-LD document to absolute-IRI form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			data, err := io.ReadAll(in)
			if err != nil {
				return err
			}

			var doc any
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("invalid JSON input: %w", err)
			}

			logger := slog.New(slog.DiscardHandler)
			if verbose {
				logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelWarn,
				}))
			}

			policy := expanse.CacheNone
			if cache {
				policy = expanse.CacheAll
			}

			p := expanse.NewProcessor(
				expanse.WithLogger(logger),
				expanse.WithStore(expanse.NewStore(expanse.WithCachePolicy(policy))),
			)

			res, err := p.Expand(cmd.Context(), doc)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().BoolVar(&cache, "cache", false, "cache resolved remote contexts for the run")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print warnings for dropped values")

	return cmd
}
