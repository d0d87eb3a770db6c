package env

import (
	"context"

	"github.com/sacenv/sacenv/pkg/sacloud"
)

// Environment resolves and creates the equipment for one prefix. It holds
// no state beyond the client and the prefix; every method observes or
// mutates the provider directly.
type Environment struct {
	client   *sacloud.Client
	prefix   string
	publicIP func(ctx context.Context) (string, bool)
}

// Option adjusts an Environment at construction time.
type Option func(*Environment)

// WithPublicIPFunc replaces the operator public address lookup, used to
// build the firewall allow rules.
func WithPublicIPFunc(fn func(ctx context.Context) (string, bool)) Option {
	return func(e *Environment) { e.publicIP = fn }
}

// New builds an Environment over client for the given prefix.
func New(client *sacloud.Client, prefix string, opts ...Option) *Environment {
	e := &Environment{
		client:   client,
		prefix:   prefix,
		publicIP: operatorPublicIP,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Prefix returns the equipment name prefix.
func (e *Environment) Prefix() string { return e.prefix }

// Client exposes the underlying resource client for power operations and
// status waits driven by the workflow layer.
func (e *Environment) Client() *sacloud.Client { return e.client }
