package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"

	"golang.org/x/crypto/ssh"
)

// SSHListener serves the game over ssh. Clients log in without credentials.
type SSHListener struct {
	port    uint16
	cm      *ConnectionManager
	hostKey ssh.Signer
	opts    options

	bound chan net.Addr
}

func NewSSHListener(port uint16, cm *ConnectionManager, hostKey ssh.Signer, opts ...Option) *SSHListener {
	return &SSHListener{
		port:    port,
		cm:      cm,
		hostKey: hostKey,
		opts:    newOptions(opts),
		bound:   make(chan net.Addr, 1),
	}
}

// Addr waits for Start to bind and returns the address it listens on.
func (l *SSHListener) Addr(ctx context.Context) (net.Addr, error) {
	select {
	case addr := <-l.bound:
		l.bound <- addr
		return addr, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *SSHListener) serverConfig() *ssh.ServerConfig {
	config := &ssh.ServerConfig{
		NoClientAuth:  true,
		ServerVersion: "SSH-2.0-Peril",
	}
	if l.opts.banner != "" {
		banner := strings.ReplaceAll(l.opts.banner, "\n", "\r\n")
		config.BannerCallback = func(ssh.ConnMetadata) string { return banner }
	}
	config.AddHostKey(l.hostKey)
	return config
}

func (l *SSHListener) Start(ctx context.Context) error {
	config := l.serverConfig()

	ln, err := net.Listen("tcp", l.opts.addr(l.port))
	if err != nil {
		return fmt.Errorf("listening for ssh on %s: %w", l.opts.addr(l.port), err)
	}
	l.bound <- ln.Addr()
	slog.InfoContext(ctx, "listening for ssh", "addr", ln.Addr().String())

	// Sessions outlive the accept loop long enough to be told to stop.
	connCtx, cancelConns := context.WithCancel(context.WithoutCancel(ctx))
	var wg sync.WaitGroup
	defer func() {
		cancelConns()
		wg.Wait()
	}()

	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	defer stop()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return fmt.Errorf("ssh listener closed: %w", err)
			}
			slog.ErrorContext(ctx, "accepting ssh connection", "error", err)
			continue
		}

		wg.Go(func() {
			l.serve(connCtx, conn, config)
		})
	}
}

func (l *SSHListener) serve(ctx context.Context, conn net.Conn, config *ssh.ServerConfig) {
	defer func() { _ = conn.Close() }()

	sshConn, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		slog.WarnContext(ctx, "ssh handshake", "remote", conn.RemoteAddr().String(), "error", err)
		return
	}
	defer func() { _ = sshConn.Close() }()

	// Closing the connection ends the channel loop below on shutdown.
	stop := context.AfterFunc(ctx, func() { _ = sshConn.Close() })
	defer stop()

	go ssh.DiscardRequests(reqs)

	var profile string
	if l.opts.loginProfiles {
		profile = sshConn.User()
	}
	slog.InfoContext(ctx, "ssh connection established", "remote", conn.RemoteAddr().String(), "user", sshConn.User())

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			_ = newChan.Reject(ssh.UnknownChannelType, "only session channels are supported")
			continue
		}

		ch, requests, err := newChan.Accept()
		if err != nil {
			slog.WarnContext(ctx, "accepting ssh channel", "error", err)
			continue
		}

		if awaitShell(ctx, requests) {
			l.cm.AcceptConnection(ctx, newLineConn(ch), profile)
			_, _ = ch.SendRequest("exit-status", false, ssh.Marshal(struct{ Status uint32 }{0}))
		}
		_ = ch.Close()
	}
}

// awaitShell answers channel requests until the client asks for a shell.
// Pty requests are refused so clients keep local echo and line editing.
func awaitShell(ctx context.Context, reqs <-chan *ssh.Request) bool {
	shell := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		var once sync.Once
		for req := range reqs {
			ok := req.Type == "shell"
			if req.WantReply {
				_ = req.Reply(ok, nil)
			}
			if ok {
				once.Do(func() { close(shell) })
			}
		}
	}()

	select {
	case <-shell:
		return true
	case <-done:
		select {
		case <-shell:
			return true
		default:
			return false
		}
	case <-ctx.Done():
		return false
	}
}
