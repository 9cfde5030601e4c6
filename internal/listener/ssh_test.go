package listener

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"io"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
	"golang.org/x/crypto/ssh"
)

func testHostKey(t *testing.T) ssh.Signer {
	t.Helper()
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	signer, err := ssh.NewSignerFromKey(key)
	if err != nil {
		t.Fatalf("creating signer: %v", err)
	}
	return signer
}

func TestSSHListener_Session(t *testing.T) {
	tests := map[string]struct {
		opts       []Option
		expProfile string
		expBanner  string
	}{
		"asks for a profile": {
			opts:       nil,
			expProfile: "",
		},
		"login name as profile": {
			opts:       []Option{WithLoginProfiles(), WithBanner("PERIL\nA text adventure.")},
			expProfile: "ada",
			expBanner:  "PERIL\r\nA text adventure.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			hostKey := testHostKey(t)
			profiles := make(chan string, 1)
			cm := NewConnectionManager(runnerFunc(func(_ context.Context, conn io.ReadWriter, profile string) error {
				profiles <- profile
				_, err := io.WriteString(conn, "Welcome to Peril!\n")
				return err
			}))

			l := NewSSHListener(0, cm, hostKey, append(tt.opts, WithHost("127.0.0.1"))...)
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- l.Start(ctx) }()
			t.Cleanup(func() {
				cancel()
				select {
				case err := <-done:
					if err != nil {
						t.Errorf("listener stopped with error: %v", err)
					}
				case <-time.After(5 * time.Second):
					t.Error("listener did not stop")
				}
			})

			addrCtx, addrCancel := context.WithTimeout(ctx, 5*time.Second)
			defer addrCancel()
			addr, err := l.Addr(addrCtx)
			if err != nil {
				t.Fatalf("waiting for listener: %v", err)
			}

			var banner string
			client, err := ssh.Dial("tcp", addr.String(), &ssh.ClientConfig{
				User:            "ada",
				HostKeyCallback: ssh.FixedHostKey(hostKey.PublicKey()),
				BannerCallback: func(msg string) error {
					banner = msg
					return nil
				},
				Timeout: 5 * time.Second,
			})
			if err != nil {
				t.Fatalf("dialing: %v", err)
			}
			defer func() { _ = client.Close() }()

			sess, err := client.NewSession()
			if err != nil {
				t.Fatalf("opening session: %v", err)
			}
			var out bytes.Buffer
			sess.Stdout = &out
			if err := sess.Shell(); err != nil {
				t.Fatalf("starting shell: %v", err)
			}
			if err := sess.Wait(); err != nil {
				t.Fatalf("waiting for shell: %v", err)
			}

			testutil.AssertEqual(t, "profile", <-profiles, tt.expProfile)
			testutil.AssertEqual(t, "banner", banner, tt.expBanner)
			testutil.AssertEqual(t, "output", out.String(), "Welcome to Peril!\r\n")
		})
	}
}

func TestSSHListener_RefusesCommands(t *testing.T) {
	hostKey := testHostKey(t)
	cm := NewConnectionManager(runnerFunc(func(context.Context, io.ReadWriter, string) error {
		t.Error("no session should start for an exec request")
		return nil
	}))

	l := NewSSHListener(0, cm, hostKey, WithHost("127.0.0.1"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Start(ctx) }()

	addrCtx, addrCancel := context.WithTimeout(ctx, 5*time.Second)
	defer addrCancel()
	addr, err := l.Addr(addrCtx)
	if err != nil {
		t.Fatalf("waiting for listener: %v", err)
	}

	client, err := ssh.Dial("tcp", addr.String(), &ssh.ClientConfig{
		User:            "ada",
		HostKeyCallback: ssh.FixedHostKey(hostKey.PublicKey()),
		Timeout:         5 * time.Second,
	})
	if err != nil {
		t.Fatalf("dialing: %v", err)
	}
	defer func() { _ = client.Close() }()

	sess, err := client.NewSession()
	if err != nil {
		t.Fatalf("opening session: %v", err)
	}
	if err := sess.Run("look"); err == nil {
		t.Error("expected exec request to be refused")
	}
}
