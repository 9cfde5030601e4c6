package listener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"syscall"

	"github.com/iammegalith/telnet"
)

// TelnetListener serves the game over telnet. Telnet has no login name, so
// sessions always ask the player for a profile.
type TelnetListener struct {
	port uint16
	cm   *ConnectionManager
	opts options
}

func NewTelnetListener(port uint16, cm *ConnectionManager, opts ...Option) *TelnetListener {
	return &TelnetListener{
		port: port,
		cm:   cm,
		opts: newOptions(opts),
	}
}

func (l *TelnetListener) Start(ctx context.Context) error {
	connCtx, cancelConns := context.WithCancel(context.WithoutCancel(ctx))
	h := &telnetHandler{
		ctx:    connCtx,
		cancel: cancelConns,
		banner: l.opts.banner,
		accept: l.cm.AcceptConnection,
	}

	addr := l.opts.addr(l.port)
	svr := telnet.NewServer(addr, h)
	slog.InfoContext(ctx, "listening for telnet", "addr", addr)

	stop := context.AfterFunc(ctx, func() {
		svr.Stop()
		h.stop()
	})
	defer stop()

	err := svr.ListenAndServe()
	if ctx.Err() != nil {
		return nil
	}
	h.stop()
	if errors.Is(err, syscall.EADDRINUSE) {
		return fmt.Errorf("telnet address %s is already in use", addr)
	}
	if err != nil {
		return fmt.Errorf("serving telnet on %s: %w", addr, err)
	}
	return nil
}

type telnetHandler struct {
	ctx    context.Context
	cancel context.CancelFunc
	banner string
	accept func(ctx context.Context, conn io.ReadWriter, profile string)

	wg sync.WaitGroup
}

func (h *telnetHandler) HandleTelnet(conn *telnet.Connection) {
	h.wg.Add(1)
	defer h.wg.Done()

	lc := newLineConn(conn)
	defer func() {
		if err := lc.Close(); err != nil {
			slog.Debug("closing telnet connection", "error", err)
		}
	}()

	if h.banner != "" {
		if _, err := io.WriteString(lc, h.banner+"\n"); err != nil {
			return
		}
	}
	h.accept(h.ctx, lc, "")
}

// stop ends every running session and waits for them to return.
func (h *telnetHandler) stop() {
	h.cancel()
	h.wg.Wait()
}
