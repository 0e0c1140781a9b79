package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newMappingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mapping",
		Short: "Manage card mappings",
	}
	cmd.AddCommand(newMappingGenerateCommand())
	return cmd
}

func newMappingGenerateCommand() *cobra.Command {
	var gameID uint64

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Create the card mapping of a game ahead of its first reveal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			_, created, err := a.mappings.GetOrCreate(context.Background(), gameID)
			if err != nil {
				return err
			}

			// The mapping itself is never printed
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Created mapping for game %d\n", gameID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Mapping for game %d already exists\n", gameID)
			}
			return nil
		},
	}

	cmd.Flags().Uint64Var(&gameID, "game", 0, "ledger game id")
	_ = cmd.MarkFlagRequired("game")
	return cmd
}
