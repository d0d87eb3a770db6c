package sacloud

import (
	"context"
	"net/http"
)

// Disk is a boot disk resource.
type Disk struct {
	ID            DiskID         `json:"ID"`
	Name          string         `json:"Name"`
	Availability  Availability   `json:"Availability"`
	SizeMB        uint64         `json:"SizeMB"`
	Connection    DiskConnection `json:"Connection"`
	Plan          *DiskPlanRef   `json:"Plan"`
	SourceArchive *ArchiveRef    `json:"SourceArchive"`
	Server        *ServerRef     `json:"Server"`
}

// DiskPlanRef references a disk plan by id.
type DiskPlanRef struct {
	ID DiskPlanID `json:"ID"`
}

// ArchiveRef references an archive by id.
type ArchiveRef struct {
	ID ArchiveID `json:"ID"`
}

// ServerRef references a server by id.
type ServerRef struct {
	ID ServerID `json:"ID"`
}

// SSHKeyRef references a registered public key by id.
type SSHKeyRef struct {
	ID SSHKeyID `json:"ID"`
}

// NoteRef attaches a note (startup script) with render variables.
type NoteRef struct {
	ID        NoteID         `json:"ID"`
	Variables map[string]any `json:"Variables"`
}

// DiskSpec is the creation payload for a disk.
type DiskSpec struct {
	Name          string         `json:"Name"`
	Description   string         `json:"Description,omitempty"`
	Plan          DiskPlanRef    `json:"Plan"`
	SourceArchive ArchiveRef     `json:"SourceArchive"`
	SizeMB        uint64         `json:"SizeMB"`
	Connection    DiskConnection `json:"Connection"`
	Server        ServerRef      `json:"Server"`
}

func (s *DiskSpec) Validate() error {
	switch {
	case s.Name == "":
		return &FieldMissingError{Field: "Name"}
	case s.Plan.ID.IsZero():
		return &FieldMissingError{Field: "Plan"}
	case s.SourceArchive.ID.IsZero():
		return &FieldMissingError{Field: "SourceArchive"}
	case s.SizeMB == 0:
		return &FieldMissingError{Field: "SizeMB"}
	case s.Server.ID.IsZero():
		return &FieldMissingError{Field: "Server"}
	}
	return nil
}

// DiskEditSpec is the initial-configuration payload applied when a disk is
// created from an archive: login credentials, addressing, attached notes.
type DiskEditSpec struct {
	Password            string      `json:"Password,omitempty"`
	HostName            string      `json:"HostName,omitempty"`
	SSHKeys             []SSHKeyRef `json:"SSHKeys"`
	ChangePartitionUUID bool        `json:"ChangePartitionUUID"`
	DisablePWAuth       bool        `json:"DisablePWAuth"`
	UserIPAddress       string      `json:"UserIPAddress"`
	UserSubnet          IPv4Net     `json:"UserIpv4Net"`
	EnableDHCP          bool        `json:"EnableDHCP"`
	Notes               []NoteRef   `json:"Notes"`
}

// Validate enforces the provider's credential rules: at least one SSH key,
// addressing present, and a password exactly when password auth is enabled.
func (s *DiskEditSpec) Validate() error {
	if len(s.SSHKeys) == 0 {
		return &FieldMissingError{Field: "SSHKeys"}
	}
	if s.UserIPAddress == "" {
		return &FieldMissingError{Field: "UserIPAddress"}
	}
	if s.UserSubnet.DefaultRoute == "" || s.UserSubnet.NetworkMaskLen == 0 {
		return &FieldMissingError{Field: "UserIpv4Net"}
	}
	if s.Password != "" && s.DisablePWAuth {
		return ErrPasswordWithAuthDisabled
	}
	if s.Password == "" && !s.DisablePWAuth {
		return ErrPasswordRequired
	}
	return nil
}

// GetDiskByName resolves the single disk with that name, or nil.
func (c *Client) GetDiskByName(ctx context.Context, name string) (*Disk, error) {
	raw, err := c.SearchByName(ctx, KindDisk, name)
	if err != nil || raw == nil {
		return nil, err
	}
	return decodeResource[Disk](KindDisk, raw)
}

// CreateDisk creates a disk together with its initial configuration. The
// provider takes the spec under "Disk" and the edit payload under "Config"
// in one request.
func (c *Client) CreateDisk(ctx context.Context, spec DiskSpec, edit DiskEditSpec) (*Disk, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := edit.Validate(); err != nil {
		return nil, err
	}
	if spec.Connection == "" {
		spec.Connection = ConnectionVirtio
	}
	body := map[string]any{
		KindDisk.SingleName(): spec,
		"Config":              edit,
	}
	raw, err := c.requestResource(ctx, http.MethodPost, KindDisk.Path(), KindDisk.SingleName(), body)
	if err != nil {
		return nil, err
	}
	return decodeResource[Disk](KindDisk, raw)
}

// GetDisk refetches a disk by id.
func (c *Client) GetDisk(ctx context.Context, id DiskID) (*Disk, error) {
	raw, err := c.Fetch(ctx, KindDisk, id.ID)
	if err != nil {
		return nil, err
	}
	return decodeResource[Disk](KindDisk, raw)
}
