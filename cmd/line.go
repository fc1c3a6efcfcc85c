package cmd

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/tunesmith/line"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(stackCmd, powerCmd, modCmd)
}

func parseLines(args []string) ([]line.Line, error) {
	lines := make([]line.Line, 0, len(args))
	for _, a := range args {
		l, err := line.Parse(a)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}

func printLine(cmd *cobra.Command, l line.Line) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t(%s, %s cents)\n", l, l.Type(), line.ToFixed(l.Cents(), 6))
}

var stackCmd = &cobra.Command{
	Use:   "stack <line> <line>...",
	Short: "Adds intervals together",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, err := parseLines(args)
		if err != nil {
			return err
		}
		res := lines[0]
		for _, l := range lines[1:] {
			res = line.Stack(res, l)
		}
		printLine(cmd, res)
		return nil
	},
}

var powerCmd = &cobra.Command{
	Use:   "power <line> <k>",
	Short: "Stacks an interval on itself k times",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := line.Parse(args[0])
		if err != nil {
			return err
		}
		k, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("power: %w", err)
		}
		printLine(cmd, line.StackSelf(l, k))
		return nil
	},
}

var modCmd = &cobra.Command{
	Use:   "mod <line> [modulus]",
	Short: "Reduces an interval by a period, 2/1 unless given",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			args = append(args, "2/1")
		}
		lines, err := parseLines(args)
		if err != nil {
			return err
		}
		printLine(cmd, line.Modulo(lines[0], lines[1]))
		return nil
	},
}
