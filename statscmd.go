package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/camden-git/carregistrybackend/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print registry statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		summary, err := stats.NewService(store).Summary()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), stats.FormatSummary(summary))
		return nil
	},
}

var ownersCmd = &cobra.Command{
	Use:   "owners",
	Short: "List persons owning more than one car",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		owners, err := store.FindPersonsWithMultipleCars()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(owners) == 0 {
			fmt.Fprintln(out, "No person owns more than one car")
			return nil
		}
		for _, o := range owners {
			fmt.Fprintf(out, "%s (%s): %d cars\n", o.Name, o.Email, o.CarCount)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(ownersCmd)
}
