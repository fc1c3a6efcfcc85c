package cmd

import (
	"fmt"

	"github.com/jsphweid/tunesmith/chord"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(invertCmd)
}

var invertCmd = &cobra.Command{
	Use:   "invert <chord>",
	Short: "Inverts the interval order of a chord",
	Long:  `Inverts the interval order of a chord given as colon separated integers, e.g. 4:5:6 becomes 10:12:15.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inverted, err := chord.Invert(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), inverted)
		return nil
	},
}
