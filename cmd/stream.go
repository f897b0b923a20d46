package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wyrelab/wyre/capture"
	"github.com/wyrelab/wyre/session"
)

var (
	streamIface   string
	streamRead    string
	streamSnaplen int32
	streamPromisc bool
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Capture and live-stream decoded network packets",
	Long: `Stream a one-line decoded summary of every frame seen on an interface,
or replay an existing .pcap file through the same pipeline with --read.
Runs until interrupted or until the capture source fails.

Examples:
  wyre stream --interface eth0
  wyre stream --read /tmp/dump.pcap`,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyHandleOverrides(cmd.Flags(), settings, streamSnaplen, streamPromisc)

		var src capture.FrameSource
		var source string
		if streamRead != "" {
			handle, err := capture.OpenOffline(streamRead)
			if err != nil {
				return err
			}
			src = handle
			source = streamRead
		} else {
			dev, err := capture.FindDevice(streamIface)
			if err != nil {
				return err
			}
			handle, err := capture.OpenHandle(dev, settings.HandleConfig())
			if err != nil {
				return err
			}
			src = handle
			source = dev.Name
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sess := session.NewLive(source, log,
			session.WithChannelSize(settings.ChannelSize))
		err := sess.Run(ctx, src)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	streamCmd.Flags().StringVarP(&streamIface, "interface", "i", "", "interface to capture from")
	streamCmd.Flags().StringVarP(&streamRead, "read", "r", "", "replay an existing .pcap file instead of a live interface")
	streamCmd.Flags().Int32Var(&streamSnaplen, "snaplen", capture.DefaultSnaplen, "max bytes captured per frame")
	streamCmd.Flags().BoolVar(&streamPromisc, "promisc", false, "open the interface in promiscuous mode")
	streamCmd.MarkFlagsOneRequired("interface", "read")
	streamCmd.MarkFlagsMutuallyExclusive("interface", "read")
	rootCmd.AddCommand(streamCmd)
}
