package sacloud

import "context"

// Switch is a private switch resource.
type Switch struct {
	ID           SwitchID     `json:"ID"`
	Name         string       `json:"Name"`
	Availability Availability `json:"Availability"`
}

// SwitchSpec is the creation payload for a switch.
type SwitchSpec struct {
	Name        string `json:"Name"`
	Description string `json:"Description,omitempty"`
}

func (s *SwitchSpec) Validate() error {
	if s.Name == "" {
		return &FieldMissingError{Field: "Name"}
	}
	return nil
}

// GetSwitchByName resolves the single switch with that name, or nil.
func (c *Client) GetSwitchByName(ctx context.Context, name string) (*Switch, error) {
	raw, err := c.SearchByName(ctx, KindSwitch, name)
	if err != nil || raw == nil {
		return nil, err
	}
	return decodeResource[Switch](KindSwitch, raw)
}

// CreateSwitch creates a switch from spec.
func (c *Client) CreateSwitch(ctx context.Context, spec SwitchSpec) (*Switch, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	raw, err := c.Create(ctx, KindSwitch, spec)
	if err != nil {
		return nil, err
	}
	return decodeResource[Switch](KindSwitch, raw)
}
