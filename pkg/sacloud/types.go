package sacloud

import "encoding/json"

// Availability is the provider-reported readiness of a resource, distinct
// from its power state. It is observed, never cached: entities are refetched
// whenever a decision depends on it.
type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityUploading Availability = "uploading"
	AvailabilityMigrating Availability = "migrating"
	AvailabilityFailed    Availability = "failed"
)

// Terminal reports whether the availability is a final state.
func (a Availability) Terminal() bool {
	return a == AvailabilityAvailable || a == AvailabilityFailed
}

// InstanceStatus is the provider-reported power state of a server or
// appliance instance.
type InstanceStatus string

const (
	InstanceCleaning InstanceStatus = "cleaning"
	InstanceUp       InstanceStatus = "up"
	InstanceDown     InstanceStatus = "down"
)

// Stable reports whether the status is safe to act on; anything else is
// transitional and must be re-observed before destructive operations.
func (s InstanceStatus) Stable() bool {
	return s == InstanceUp || s == InstanceDown
}

// Instance is the power-state block embedded in server and appliance
// resources.
type Instance struct {
	Status InstanceStatus `json:"Status"`
}

// InterfaceDriver selects the virtual NIC model.
type InterfaceDriver string

const (
	DriverVirtio InterfaceDriver = "virtio"
	DriverE1000  InterfaceDriver = "e1000"
)

// DiskConnection selects the virtual disk bus.
type DiskConnection string

const (
	ConnectionVirtio DiskConnection = "virtio"
	ConnectionIDE    DiskConnection = "ide"
)

// IPv4Net is the provider's gateway-plus-mask network description.
type IPv4Net struct {
	DefaultRoute   string `json:"DefaultRoute"`
	NetworkMaskLen int    `json:"NetworkMaskLen"`
}

func decodeResource[T any](kind ResourceKind, raw json.RawMessage) (*T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &UnmarshalError{Kind: kind, Err: err}
	}
	return &v, nil
}
