// Package cmd implements the wyre CLI using cobra.
package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wyrelab/wyre/config"
	"github.com/wyrelab/wyre/logger"
)

var (
	cfgFile  string
	logLevel string
	logFile  string

	settings *config.AppSettings
	log      *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wyre",
	Short: "Wyre is a network packet analyzer",
	Long: `Wyre captures raw link-layer frames from a network interface and either
saves them to a .pcap file or streams a decoded one-line summary in real time.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		// Flags win over the config file.
		if cmd.Flags().Changed("log-level") || settings.Log.Level == "" {
			settings.Log.Level = logLevel
		}
		if cmd.Flags().Changed("log-file") {
			settings.Log.File = logFile
		}
		log, err = logger.New(settings.Log)
		return err
	},
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file path (optional)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also log to this file, with rotation")
}
