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
	captureDir     string
	captureFile    string
	captureSize    uint64
	captureIface   string
	captureSnaplen int32
	capturePromisc bool
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture network packets and save them in a .pcap file",
	Long: `Capture a fixed number of frames from one interface and append them to
<dir>/<file>.pcap. The interface defaults to the platform default device.

Examples:
  wyre capture --dir /tmp --file dump --size 100
  wyre capture --dir /tmp --file dump --size 100 --interface eth0 --snaplen 2048`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Destination first: a bad path must fail before any capture
		// resource is claimed.
		if err := session.IsValidDir(captureDir); err != nil {
			return err
		}
		applyHandleOverrides(cmd.Flags(), settings, captureSnaplen, capturePromisc)

		name := captureIface
		if name == "" {
			dev, err := capture.DefaultDevice()
			if err != nil {
				return err
			}
			if dev == nil {
				return errors.New("interface not specified and no default device found")
			}
			name = dev.Name
		}

		dev, err := capture.FindDevice(name)
		if err != nil {
			return err
		}

		handle, err := capture.OpenHandle(dev, settings.HandleConfig())
		if err != nil {
			return err
		}

		writer, err := session.NewFrameWriter(captureDir, captureFile, uint32(settings.Snaplen))
		if err != nil {
			handle.Close()
			return err
		}
		defer writer.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sess := session.NewBounded(dev.Name, captureSize, writer, log,
			session.WithChannelSize(settings.ChannelSize))
		err = sess.Run(ctx, handle)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	captureCmd.Flags().StringVarP(&captureDir, "dir", "d", "", "directory where the capture file is saved")
	captureCmd.Flags().StringVarP(&captureFile, "file", "f", "", "name of the .pcap file, without extension")
	captureCmd.Flags().Uint64VarP(&captureSize, "size", "s", 0, "number of frames to capture")
	captureCmd.Flags().StringVarP(&captureIface, "interface", "i", "", "interface to capture from")
	captureCmd.Flags().Int32Var(&captureSnaplen, "snaplen", capture.DefaultSnaplen, "max bytes captured per frame")
	captureCmd.Flags().BoolVar(&capturePromisc, "promisc", false, "open the interface in promiscuous mode")
	captureCmd.MarkFlagRequired("dir")
	captureCmd.MarkFlagRequired("file")
	captureCmd.MarkFlagRequired("size")
	rootCmd.AddCommand(captureCmd)
}
