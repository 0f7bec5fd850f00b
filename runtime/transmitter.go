package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"radio-lab/contract"
	"radio-lab/domain/packet"
	"radio-lab/errors"
)

var _ contract.ITransmitter = (*Transmitter)(nil)

// Transmitter writes one packet per connection to the peer station.
type Transmitter struct {
	log     *slog.Logger
	address string
	dialer  net.Dialer
}

func NewTransmitter(log *slog.Logger, address string) *Transmitter {
	return &Transmitter{log: log, address: address}
}

// Send dials the peer, writes the packet in a single write and closes.
func (t *Transmitter) Send(ctx context.Context, p packet.Packet) error {
	conn, err := t.dialer.DialContext(ctx, "tcp", t.address)
	if err != nil {
		return fmt.Errorf("%w at %s: %w", errors.ErrPeerUnreachable, t.address, err)
	}
	defer func() {
		_ = conn.Close()
	}()

	n, err := conn.Write(p.Encode())
	if err != nil {
		return fmt.Errorf("write to %s failed: %w", t.address, err)
	}
	t.log.Debug("Packet sent", "address", t.address, "bytes", n)
	return nil
}
