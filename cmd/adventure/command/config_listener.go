package command

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-peril/internal/listener"
	"github.com/pixil98/go-service"
	"golang.org/x/crypto/ssh"
)

type ListenerType int

const (
	ListenerTypeTelnet ListenerType = iota
	ListenerTypeSSH
)

func (lt *ListenerType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "telnet":
		*lt = ListenerTypeTelnet
	case "ssh":
		*lt = ListenerTypeSSH
	default:
		return fmt.Errorf("unknown listener type: %s", text)
	}
	return nil
}

func (lt ListenerType) String() string {
	if lt == ListenerTypeSSH {
		return "ssh"
	}
	return "telnet"
}

// ListenerConfig describes one network endpoint players connect to.
type ListenerConfig struct {
	Protocol ListenerType `json:"protocol"`
	Host     string       `json:"host,omitempty"`
	Port     uint16       `json:"port"`
	Banner   string       `json:"banner,omitempty"`

	// ssh only
	HostKeyPath   string `json:"host_key_path,omitempty"`
	LoginProfiles bool   `json:"login_profiles,omitempty"`
}

func (cl *ListenerConfig) validate() error {
	el := errors.NewErrorList()

	if cl.Port == 0 {
		el.Add(fmt.Errorf("port must be set to a positive integer"))
	}
	if cl.Protocol != ListenerTypeSSH {
		if cl.HostKeyPath != "" {
			el.Add(fmt.Errorf("host_key_path only applies to ssh listeners"))
		}
		if cl.LoginProfiles {
			el.Add(fmt.Errorf("login_profiles only applies to ssh listeners"))
		}
	}

	return el.Err()
}

func (cl *ListenerConfig) options() []listener.Option {
	var opts []listener.Option
	if cl.Host != "" {
		opts = append(opts, listener.WithHost(cl.Host))
	}
	if cl.Banner != "" {
		opts = append(opts, listener.WithBanner(cl.Banner))
	}
	if cl.LoginProfiles {
		opts = append(opts, listener.WithLoginProfiles())
	}
	return opts
}

func (cl *ListenerConfig) BuildListener(cm *listener.ConnectionManager) (service.Worker, error) {
	switch cl.Protocol {
	case ListenerTypeTelnet:
		return listener.NewTelnetListener(cl.Port, cm, cl.options()...), nil
	case ListenerTypeSSH:
		hostKey, err := cl.hostKey()
		if err != nil {
			return nil, fmt.Errorf("setting up ssh host key: %w", err)
		}
		return listener.NewSSHListener(cl.Port, cm, hostKey, cl.options()...), nil
	default:
		return nil, fmt.Errorf("unknown listener type: %v", cl.Protocol)
	}
}

// hostKey reads the key at HostKeyPath. A missing file is filled with a new
// key so the server keeps its identity across restarts. Without a path the
// key lives only as long as the process.
func (cl *ListenerConfig) hostKey() (ssh.Signer, error) {
	if cl.HostKeyPath == "" {
		slog.Warn("no host_key_path configured for ssh listener, generating ephemeral key", "port", cl.Port)
		_, key, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("generating ephemeral key: %w", err)
		}
		return ssh.NewSignerFromKey(key)
	}

	keyBytes, err := os.ReadFile(cl.HostKeyPath)
	if os.IsNotExist(err) {
		return generateHostKey(cl.HostKeyPath)
	}
	if err != nil {
		return nil, fmt.Errorf("reading host key %q: %w", cl.HostKeyPath, err)
	}
	signer, err := ssh.ParsePrivateKey(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing host key %q: %w", cl.HostKeyPath, err)
	}
	return signer, nil
}

func generateHostKey(path string) (ssh.Signer, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating host key: %w", err)
	}
	block, err := ssh.MarshalPrivateKey(key, "peril host key")
	if err != nil {
		return nil, fmt.Errorf("encoding host key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating host key dir: %w", err)
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0600); err != nil {
		return nil, fmt.Errorf("writing host key %q: %w", path, err)
	}
	slog.Info("generated ssh host key", "path", path)
	return ssh.NewSignerFromKey(key)
}
