package sacloud

import (
	"context"
	"fmt"
)

// Server is a virtual server resource. Only the fields the workflows read
// are modelled; unknown fields are ignored on decode.
type Server struct {
	ID           ServerID       `json:"ID"`
	Name         string         `json:"Name"`
	HostName     string         `json:"HostName"`
	Availability Availability   `json:"Availability"`
	Instance     *Instance      `json:"Instance"`
	ServerPlan   *ServerPlanRef `json:"ServerPlan"`
}

// ServerPlanRef references a server plan by id.
type ServerPlanRef struct {
	ID ServerPlanID `json:"ID"`
}

// SwitchRef references a switch by id.
type SwitchRef struct {
	ID SwitchID `json:"ID"`
}

// ServerSpec is the creation payload for a server.
type ServerSpec struct {
	Name              string          `json:"Name"`
	ServerPlan        ServerPlanRef   `json:"ServerPlan"`
	Description       string          `json:"Description,omitempty"`
	HostName          string          `json:"HostName,omitempty"`
	InterfaceDriver   InterfaceDriver `json:"InterfaceDriver"`
	ConnectedSwitches []SwitchRef     `json:"ConnectedSwitches,omitempty"`
	WaitDiskMigration bool            `json:"WaitDiskMigration,omitempty"`
}

// Validate checks the fields the provider rejects when absent.
func (s *ServerSpec) Validate() error {
	if s.Name == "" {
		return &FieldMissingError{Field: "Name"}
	}
	if s.ServerPlan.ID.IsZero() {
		return &FieldMissingError{Field: "ServerPlan"}
	}
	return nil
}

// GetServerByName resolves the single server with that name, or nil.
func (c *Client) GetServerByName(ctx context.Context, name string) (*Server, error) {
	raw, err := c.SearchByName(ctx, KindServer, name)
	if err != nil || raw == nil {
		return nil, err
	}
	return decodeResource[Server](KindServer, raw)
}

// CreateServer creates a server from spec.
func (c *Client) CreateServer(ctx context.Context, spec ServerSpec) (*Server, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if spec.InterfaceDriver == "" {
		spec.InterfaceDriver = DriverVirtio
	}
	raw, err := c.Create(ctx, KindServer, spec)
	if err != nil {
		return nil, err
	}
	return decodeResource[Server](KindServer, raw)
}

// GetServer refetches a server by id.
func (c *Client) GetServer(ctx context.Context, id ServerID) (*Server, error) {
	raw, err := c.Fetch(ctx, KindServer, id.ID)
	if err != nil {
		return nil, err
	}
	return decodeResource[Server](KindServer, raw)
}

// ConnectedServers lists the servers attached to a switch.
func (c *Client) ConnectedServers(ctx context.Context, switchID SwitchID) ([]Server, error) {
	path := fmt.Sprintf("switch/%s/server", switchID)
	values, err := c.Search(ctx, path, KindServer.PluralName(), SearchOptions{})
	if err != nil {
		return nil, err
	}
	servers := make([]Server, 0, len(values))
	for _, raw := range values {
		s, err := decodeResource[Server](KindServer, raw)
		if err != nil {
			return nil, err
		}
		servers = append(servers, *s)
	}
	return servers, nil
}

// ServerConnectedToSwitch reports whether the server appears in the switch's
// connected-server listing.
func (c *Client) ServerConnectedToSwitch(ctx context.Context, serverID ServerID, switchID SwitchID) (bool, error) {
	servers, err := c.ConnectedServers(ctx, switchID)
	if err != nil {
		return false, err
	}
	for _, s := range servers {
		if s.ID == serverID {
			return true, nil
		}
	}
	return false, nil
}
