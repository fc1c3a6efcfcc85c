package cmd

import (
	"github.com/jsphweid/tunesmith/config"
	"github.com/jsphweid/tunesmith/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger = logging.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "tunesmith",
	Short: "Scale algebra and tuning file export",
	Long: `tunesmith works with microtonal scales written as ratios (3/2), steps of an
equal division of the octave (7\12), comma decimals (1,5) and cents (701.955).
It stacks and reduces intervals, inverts chords, and exports scales to the
tuning formats read by Scala, AnaMark, Max/MSP, Pd, Kontakt, Deflemask and
Korg's 'logue librarian.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/tunesmith/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "overrides logging.level")
}

func setup() error {
	c, path, exists, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	l, err := logging.New(c.Logging.Level, c.Logging.Format)
	if err != nil {
		return err
	}
	cfg, logger = c, l
	logger.Debug("loaded config", zap.String("path", path), zap.Bool("exists", exists))
	return nil
}

func Execute() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	cobra.CheckErr(err)
}
