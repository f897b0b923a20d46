// Package decode turns raw frames into one-line, human-readable summaries.
// All protocol parsing is delegated to gopacket; this package only picks the
// layers it recognizes and renders them.
package decode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/sirupsen/logrus"

	"github.com/wyrelab/wyre/model"
)

// ErrDecode means the frame could not be decoded as an Ethernet frame.
var ErrDecode = errors.New("failed to decode frame")

// Formatter renders captured frames as log lines. It holds its logger
// explicitly; nothing in this package touches process-wide logging state.
type Formatter struct {
	log  *logrus.Logger
	mode string
}

// NewFormatter returns a Formatter that tags every summary with mode
// (e.g. "CAPTURE" or "STREAM").
func NewFormatter(log *logrus.Logger, mode string) *Formatter {
	return &Formatter{log: log, mode: mode}
}

// LogFrame decodes frame and logs its summary at info level. A frame that
// cannot be decoded is logged at warn level and produces no summary; the
// caller treats that as advisory and keeps going. The summary and whether
// one was emitted are returned for callers that want them.
func (f *Formatter) LogFrame(frame *model.RawFrame) (string, bool) {
	summary, err := DecodeAndFormat(frame.Data)
	if err != nil {
		f.log.WithError(err).Warn("error parsing frame")
		return "", false
	}
	f.log.Infof("%s: %s | %d bytes", f.mode, summary, len(frame.Data))
	return summary, true
}

// DecodeAndFormat decodes raw bytes starting at the Ethernet layer and
// concatenates the Ethernet segment, the first recognized network segment
// (IPv4 else IPv6) and the first recognized transport segment (TCP else UDP
// else ICMP). Unrecognized network or transport layers yield an empty
// segment, not an error; a frame with no Ethernet layer at all is a decode
// failure.
func DecodeAndFormat(data []byte) (string, error) {
	pkt := gopacket.NewPacket(data, layers.LayerTypeEthernet, gopacket.Default)

	ethLayer := pkt.Layer(layers.LayerTypeEthernet)
	if ethLayer == nil {
		if errLayer := pkt.ErrorLayer(); errLayer != nil {
			return "", fmt.Errorf("%w: %w", ErrDecode, errLayer.Error())
		}
		return "", ErrDecode
	}
	eth := ethLayer.(*layers.Ethernet)

	segments := []string{formatEthernet(eth)}
	if s := formatNetwork(pkt); s != "" {
		segments = append(segments, s)
	}
	if s := formatTransport(pkt); s != "" {
		segments = append(segments, s)
	}
	return strings.Join(segments, " "), nil
}

func formatEthernet(eth *layers.Ethernet) string {
	return fmt.Sprintf("|Ethernet: src_mac: %s dst_mac: %s type: %s",
		eth.SrcMAC, eth.DstMAC, eth.EthernetType)
}

// formatNetwork renders IPv4 when present, else IPv6, else nothing.
func formatNetwork(pkt gopacket.Packet) string {
	if l := pkt.Layer(layers.LayerTypeIPv4); l != nil {
		ip4 := l.(*layers.IPv4)
		return fmt.Sprintf("|IPv4: version: %d src_addr: %s dst_addr: %s protocol: %s ttl: %d",
			ip4.Version, ip4.SrcIP, ip4.DstIP, ip4.Protocol, ip4.TTL)
	}
	if l := pkt.Layer(layers.LayerTypeIPv6); l != nil {
		ip6 := l.(*layers.IPv6)
		return fmt.Sprintf("|IPv6: version: %d src_addr: %s dst_addr: %s next_header: %s",
			ip6.Version, ip6.SrcIP, ip6.DstIP, ip6.NextHeader)
	}
	return ""
}

// formatTransport renders the first of TCP, UDP, ICMP present.
func formatTransport(pkt gopacket.Packet) string {
	if l := pkt.Layer(layers.LayerTypeTCP); l != nil {
		tcp := l.(*layers.TCP)
		return fmt.Sprintf("|TCP: src_port: %d dst_port: %d seq: %d syn: %t ack: %t",
			tcp.SrcPort, tcp.DstPort, tcp.Seq, tcp.SYN, tcp.ACK)
	}
	if l := pkt.Layer(layers.LayerTypeUDP); l != nil {
		udp := l.(*layers.UDP)
		return fmt.Sprintf("|UDP: src_port: %d dst_port: %d", udp.SrcPort, udp.DstPort)
	}
	if l := pkt.Layer(layers.LayerTypeICMPv4); l != nil {
		icmp := l.(*layers.ICMPv4)
		return fmt.Sprintf("|ICMP: type: %d code: %d checksum: %d",
			icmp.TypeCode.Type(), icmp.TypeCode.Code(), icmp.Checksum)
	}
	if l := pkt.Layer(layers.LayerTypeICMPv6); l != nil {
		icmp := l.(*layers.ICMPv6)
		return fmt.Sprintf("|ICMPv6: type: %d code: %d checksum: %d",
			icmp.TypeCode.Type(), icmp.TypeCode.Code(), icmp.Checksum)
	}
	return ""
}
