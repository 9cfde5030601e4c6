package listener

import (
	"net"
	"strconv"
)

type options struct {
	host          string
	banner        string
	loginProfiles bool
}

// Option configures a listener.
type Option func(*options)

// WithHost binds the listener to one interface instead of all of them.
func WithHost(host string) Option {
	return func(o *options) {
		o.host = host
	}
}

// WithBanner sets the text shown to clients before the game starts.
func WithBanner(banner string) Option {
	return func(o *options) {
		o.banner = banner
	}
}

// WithLoginProfiles uses the name a client logged in with as its save
// profile, so players are not asked for one. Only ssh carries a login name.
func WithLoginProfiles() Option {
	return func(o *options) {
		o.loginProfiles = true
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) addr(port uint16) string {
	return net.JoinHostPort(o.host, strconv.Itoa(int(port)))
}
