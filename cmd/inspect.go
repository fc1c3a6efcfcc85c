package cmd

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/jsphweid/tunesmith/line"
	"github.com/jsphweid/tunesmith/midi"
	"github.com/jsphweid/tunesmith/tuning"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	inspectScale scaleFlags
	inspectKeys  bool
)

func init() {
	inspectCmd.Flags().Float64Var(&inspectScale.freq, "freq", 0, "base frequency in Hz")
	inspectCmd.Flags().IntVar(&inspectScale.midi, "midi", -1, "MIDI key of the base frequency")
	inspectCmd.Flags().BoolVar(&inspectKeys, "keys", false, "also list all 128 MIDI keys")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <scale-file>",
	Short: "Shows the degrees of a scale",
	Long: `Shows each degree of a scale with its notation, cents and ratio.

A .mid or .syx file written by export is read back instead, showing the
tuning dump it carries.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch strings.ToLower(filepath.Ext(args[0])) {
		case ".mid", ".syx":
			return inspectDumpFile(cmd.OutOrStdout(), args[0])
		}

		t, err := loadTable(args[0], inspectScale)
		if err != nil {
			return err
		}
		inspect(cmd.OutOrStdout(), t, inspectKeys)
		return nil
	},
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func newTableWriter(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	if isTerminal(w) {
		tw.SetStyle(table.StyleColoredBright)
	} else {
		tw.SetStyle(table.StyleLight)
	}
	return tw
}

func inspect(w io.Writer, t *tuning.Table, keys bool) {
	if t.Description != "" {
		fmt.Fprintln(w, t.Description)
	}

	tw := newTableWriter(w)
	tw.AppendHeader(table.Row{"#", "Line", "Type", "Cents", "Ratio"})
	for i, l := range t.ScaleData {
		tw.AppendRow(table.Row{i, l.String(), l.Type(), line.ToFixed(t.DegreeCents[i], 6), line.ToFixed(t.TuningData[i], 6)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	tw.Render()

	if !keys {
		return
	}

	kw := newTableWriter(w)
	kw.AppendHeader(table.Row{"Key", "Name", "Hz", "Cents"})
	for i := range t.Freq {
		name := midi.NoteName(i)
		if i == t.BaseMidiNote {
			name += " *"
		}
		kw.AppendRow(table.Row{strconv.Itoa(i), name, line.ToFixed(t.Freq[i], 4), line.ToFixed(t.Cents[i], 2)})
	}
	kw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	kw.Render()
}

func inspectDumpFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dump, err := midi.ReadTuningDump(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprintf(w, "%s (program %d)\n", dump.Name, dump.Program)
	kw := newTableWriter(w)
	kw.AppendHeader(table.Row{"Key", "Name", "Hz", "Nearest", "Cents"})
	for i, freq := range dump.Freq {
		if math.IsNaN(freq) {
			kw.AppendRow(table.Row{strconv.Itoa(i), midi.NoteName(i), "-", "-", "-"})
			continue
		}
		note, cents := midi.Ftom(freq)
		kw.AppendRow(table.Row{strconv.Itoa(i), midi.NoteName(i), line.ToFixed(freq, 4), midi.NoteName(note), line.ToFixed(cents, 2)})
	}
	kw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	kw.Render()
	return nil
}
