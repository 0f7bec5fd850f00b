package workers

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"net"
	"radio-lab/contract"
	"radio-lab/domain/packet"
	"radio-lab/errors"
)

var _ contract.Worker = (*ListenerWorker)(nil)

// PacketHandler receives every well-formed packet. It must not block for long:
// connections are served one after the other.
type PacketHandler func(ctx context.Context, p packet.Packet)

// ListenerWorker accepts one connection at a time and reads a single packet
// from it, until the peer closes or MaxPacketSize bytes have been read.
// The listener is closed when the context is done, not when Run returns, so
// a restarted worker keeps accepting on the same socket.
type ListenerWorker struct {
	listener net.Listener
	handle   PacketHandler
	log      *slog.Logger
}

func NewListenerWorker(listener net.Listener, handle PacketHandler, log *slog.Logger) *ListenerWorker {
	return &ListenerWorker{listener: listener, handle: handle, log: log}
}

func (w *ListenerWorker) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = w.listener.Close()
	})
	defer stop()

	w.log.Info("Listening for messages", "address", w.listener.Addr().String())
	for {
		conn, err := w.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || stderrors.Is(err, net.ErrClosed) {
				w.log.Debug("Listener closed")
				return nil
			}
			w.log.Warn("Accept failed", "error", err)
			continue
		}
		w.serve(ctx, conn)
	}
}

func (w *ListenerWorker) serve(ctx context.Context, conn net.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(conn, packet.MaxPacketSize))
	if err != nil {
		w.log.Warn("Unable to read packet", "remote", conn.RemoteAddr().String(), "error", err)
		return
	}
	if len(data) == 0 {
		return
	}

	p, err := packet.Parse(data)
	if err != nil {
		if stderrors.Is(err, errors.ErrMalformedPacket) {
			w.log.Debug("Malformed packet dropped", "remote", conn.RemoteAddr().String(), "bytes", len(data))
			return
		}
		w.log.Warn("Unable to parse packet", "error", err)
		return
	}
	w.handle(ctx, p)
}
