package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fadedpez/cardvault/pkg/entities"
	"github.com/fadedpez/cardvault/pkg/holdem"
)

func newEvaluateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "evaluate <card>...",
		Short:   "Evaluate a hand of five to seven cards",
		Example: "  cardvault evaluate As Ks Qs Js Ts 2d 3c",
		Args:    cobra.RangeArgs(holdem.MinCards, holdem.MaxCards),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := entities.ParseCards(args...)
			if err != nil {
				return err
			}

			eval, err := holdem.Evaluate(cards)
			if err != nil {
				return err
			}
			return printEvaluation(cmd.OutOrStdout(), eval)
		},
	}
}

func printEvaluation(w io.Writer, eval holdem.HandEvaluation) error {
	values := make([]string, 0, len(eval.Tiebreak))
	for _, rank := range eval.Tiebreak {
		value, err := rank.Value()
		if err != nil {
			return err
		}
		values = append(values, string(value))
	}

	_, err := fmt.Fprintf(w, "%s (%s)\n", eval.Category, strings.Join(values, ", "))
	return err
}
