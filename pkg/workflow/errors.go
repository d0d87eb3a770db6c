package workflow

import (
	"errors"
	"fmt"

	"github.com/sacenv/sacenv/pkg/sacloud"
)

var (
	// ErrLoginMethodRequired is returned before any mutation when the
	// server must be created but neither a public key nor a password was
	// supplied.
	ErrLoginMethodRequired = errors.New("server needs to be created but no login method was given")

	// ErrSSHKeyRequired is returned when the disk must be created, no key
	// is registered under the environment's name, and none was supplied.
	ErrSSHKeyRequired = errors.New("ssh public key required to create the server disk")
)

// SwitchNotConnectedError reports a pre-existing switch that is not
// attached to the environment's VPC router. Never auto-rewired; the switch
// may belong to a live topology this tool knows nothing about.
type SwitchNotConnectedError struct {
	SwitchID    sacloud.SwitchID    `json:"switch_id"`
	VpcRouterID sacloud.ApplianceID `json:"vpc_router_id"`
}

func (e *SwitchNotConnectedError) Error() string {
	return fmt.Sprintf("switch %s exists but is not connected to vpc router %s", e.SwitchID, e.VpcRouterID)
}

// ServerNotConnectedError reports a pre-existing server that is not
// attached to the environment's switch.
type ServerNotConnectedError struct {
	ServerID sacloud.ServerID `json:"server_id"`
	SwitchID sacloud.SwitchID `json:"switch_id"`
}

func (e *ServerNotConnectedError) Error() string {
	return fmt.Sprintf("server %s exists but is not connected to switch %s", e.ServerID, e.SwitchID)
}

// SSHKeyMismatchError reports a key already registered under the
// environment's name whose material differs from the supplied one.
// Overwriting a registered credential, or guessing which one was meant, is
// unsafe, so this is a hard error.
type SSHKeyMismatchError struct {
	KeyID      sacloud.SSHKeyID `json:"key_id"`
	Registered string           `json:"registered"`
	Supplied   string           `json:"supplied"`
}

func (e *SSHKeyMismatchError) Error() string {
	return fmt.Sprintf("ssh public key %s already registered but does not match the supplied key", e.KeyID)
}

// RouterAddressMissingError reports a VPC router that has no global
// address assigned, leaving the bootstrap with nothing to connect to.
type RouterAddressMissingError struct {
	VpcRouterID sacloud.ApplianceID `json:"vpc_router_id"`
}

func (e *RouterAddressMissingError) Error() string {
	return fmt.Sprintf("vpc router %s has no global address", e.VpcRouterID)
}
