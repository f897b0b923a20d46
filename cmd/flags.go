package cmd

import (
	"github.com/spf13/pflag"

	"github.com/wyrelab/wyre/config"
)

// applyHandleOverrides lets the per-command capture flags win over
// config-file values, the same way the log flags behave on the root command.
func applyHandleOverrides(flags *pflag.FlagSet, s *config.AppSettings, snaplen int32, promisc bool) {
	if flags.Changed("snaplen") {
		s.Snaplen = snaplen
	}
	if flags.Changed("promisc") {
		s.Promiscuous = promisc
	}
}
