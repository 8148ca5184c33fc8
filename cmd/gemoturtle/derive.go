package main

import (
	"bufio"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aabizri/gemoturtle/internal/logging"
)

type deriveOptions struct {
	grammarOptions
	generations uint
	lengthsOnly bool
}

func (a *App) newDeriveCmd() *cobra.Command {
	opts := &deriveOptions{}

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Print every generation of an L-system",
		Long: `Rewrite the axiom generation after generation, printing each sentence.

Examples:
  # Fibonacci words
  gemoturtle derive -a A -r A=AB -r B=A -n 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.derive(cmd.Context(), cmd, opts)
		},
	}

	addGrammarFlags(cmd, &opts.grammarOptions)
	cmd.Flags().UintVarP(&opts.generations, "generations", "n", 0, "Number of generations (overrides config)")
	cmd.Flags().BoolVar(&opts.lengthsOnly, "lengths", false, "Print lengths only")

	return cmd
}

func (a *App) derive(ctx context.Context, cmd *cobra.Command, opts *deriveOptions) error {
	s, err := a.newSession(&opts.grammarOptions)
	if err != nil {
		return err
	}
	generations := s.settings.Generations
	if cmd.Flags().Changed("generations") {
		generations = opts.generations
	}

	w := bufio.NewWriter(a.stdout)

	emit := func() {
		seq := s.lsystem.Sequence()
		if opts.lengthsOnly {
			fmt.Fprintf(w, "%d %d\n", s.lsystem.Generation(), len(seq))
			return
		}
		fmt.Fprintf(w, "Generation %d: %s\n", s.lsystem.Generation(), seq)
	}

	emit()
	for s.lsystem.Generation() < generations {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.lsystem.AdvanceWithin(s.limit()); err != nil {
			s.event(s.logger.Error()).Add(logging.ErrorField(err)).Msg("derivation stopped")
			w.Flush()
			return err
		}
		emit()
	}
	return w.Flush()
}
