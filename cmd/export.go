package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jsphweid/tunesmith/constants"
	"github.com/jsphweid/tunesmith/export"
	"github.com/jsphweid/tunesmith/file"
	"github.com/jsphweid/tunesmith/mnlg"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errBinaryToTerminal = errors.New("refusing to write a binary payload to a terminal, use --base64 or redirect")

var (
	exportScale   scaleFlags
	exportNewline string
	exportOut     string
	exportBase64  bool
	exportProgram uint8
)

func init() {
	exportCmd.Flags().Float64Var(&exportScale.freq, "freq", 0, "base frequency in Hz (default tuning.base_frequency)")
	exportCmd.Flags().IntVar(&exportScale.midi, "midi", -1, "MIDI key of the base frequency (default tuning.base_midi_note)")
	exportCmd.Flags().StringVar(&exportScale.name, "name", "", "tuning name, also used for the file name")
	exportCmd.Flags().StringVar(&exportNewline, "newline", "", `"unix" or "windows" (default tuning.newline)`)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", `output directory, or "-" for stdout (default export.out_dir)`)
	exportCmd.Flags().BoolVar(&exportBase64, "base64", false, "base64 encode 'logue archives")
	exportCmd.Flags().Uint8Var(&exportProgram, "program", 0, "tuning program number for syx dumps")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <format> <scale-file>",
	Short: "Exports a scale to a tuning file",
	Long: `Exports a scale file (one interval per line, "!" starts a comment) in one
of these formats: ` + strings.Join(export.Keys(), ", ") + `.
Use "-" as the scale file to read from stdin.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := runExport(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if exportOut != "-" {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	},
}

func exportOptions(newline string, base64 bool, log *zap.Logger) export.Options {
	nl := cfg.Newline()
	switch newline {
	case "unix":
		nl = constants.UnixNewline
	case "windows":
		nl = constants.WindowsNewline
	}
	exporter := cfg.MnlgExporter(log)
	if base64 {
		exporter.Encoding = mnlg.Base64
	}
	return export.Options{Newline: nl, Mnlg: exporter, SysExProgram: exportProgram}
}

func runExport(ctx context.Context, formatKey, scalePath string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	format, err := export.Lookup(formatKey)
	if err != nil {
		return "", err
	}
	table, err := loadTable(scalePath, exportScale)
	if err != nil {
		return "", err
	}

	log := logger.With(zap.String("export_id", uuid.NewString()), zap.String("format", format.Key))
	payload, err := format.Write(ctx, table, exportOptions(exportNewline, exportBase64, log))
	if err != nil {
		return "", err
	}
	for _, d := range payload.Diagnostics {
		log.Warn("export diagnostic", zap.Error(d))
	}

	var sink file.Sink
	if exportOut == "-" {
		binary := (payload.MimeType == mnlg.MimeType && !exportBase64) || format.Key == "syx" || format.Key == "mid"
		if binary && isatty.IsTerminal(os.Stdout.Fd()) {
			return "", errBinaryToTerminal
		}
		sink = file.WriterSink{W: os.Stdout}
	} else {
		dir := exportOut
		if dir == "" {
			dir = cfg.Export.OutDir
		}
		sink = file.NewDirSink(dir, log)
	}
	return sink.Save(ctx, payload)
}
