// Package env resolves the fixed set of named equipment a provisioned
// environment is made of. Every piece is bound to a deterministic name
// derived from a user-supplied prefix; the name doubles as the idempotency
// key: "the equipment exists" means exactly one resource of that kind
// carries that exact name. Resolution never mutates anything - callers
// decide whether a missing piece should be created.
package env

import "fmt"

// EquipmentKind enumerates the named pieces of the fixed topology.
type EquipmentKind int

const (
	KindPrimaryServer EquipmentKind = iota
	KindPrimaryServerDisk
	KindPrimaryServerSSHKey
	KindPrimarySwitch
	KindPrimaryVpcRouter
	KindPrimarySetupNote
)

// Name derives the deterministic resource name for the kind under prefix.
// The server and its boot disk deliberately share a name.
func (k EquipmentKind) Name(prefix string) string {
	switch k {
	case KindPrimaryServer, KindPrimaryServerDisk:
		return fmt.Sprintf("%s-server", prefix)
	case KindPrimaryServerSSHKey:
		return fmt.Sprintf("%s-pub-key", prefix)
	case KindPrimarySwitch:
		return fmt.Sprintf("%s-switch", prefix)
	case KindPrimaryVpcRouter:
		return fmt.Sprintf("%s-vpc-router", prefix)
	case KindPrimarySetupNote:
		return fmt.Sprintf("%s-setup-script", prefix)
	}
	return prefix
}

// Addressing constants for the private segment behind the VPC router. The
// topology is fixed, so these are compile-time facts rather than config.
const (
	RouterPrivateIP   = "192.168.2.1"
	ServerPrivateIP   = "192.168.2.2"
	PrivateMaskLen    = 24
	ForwardedSSHPort  = "10022"
	serverSSHPort     = "22"
	archiveOSTag      = "ubuntu-22.04-latest"
	defaultDiskSizeMB = 20480
)
