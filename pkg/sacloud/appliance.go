package sacloud

import (
	"context"
	"fmt"
)

// Appliance is a managed network appliance; the only class the workflows use
// is the VPC router.
type Appliance struct {
	ID           ApplianceID          `json:"ID"`
	Name         string               `json:"Name"`
	Class        string               `json:"Class"`
	Availability Availability         `json:"Availability"`
	Instance     *Instance            `json:"Instance"`
	Interfaces   []ApplianceInterface `json:"Interfaces"`
}

// ApplianceInterface is one attached network interface.
type ApplianceInterface struct {
	IPAddress string `json:"IPAddress"`
}

// GlobalIP returns the appliance's first assigned address, which for a
// shared-segment VPC router is its public one. Empty when none is
// assigned yet.
func (a *Appliance) GlobalIP() string {
	for _, iface := range a.Interfaces {
		if iface.IPAddress != "" {
			return iface.IPAddress
		}
	}
	return ""
}

// ApplianceSpec is the creation payload for a vpcrouter-class appliance.
// Remark and Settings are forwarded verbatim; their shapes are a provider
// contract, not something this client interprets.
type ApplianceSpec struct {
	Class       string           `json:"Class"`
	Name        string           `json:"Name"`
	Description string           `json:"Description,omitempty"`
	Plan        VpcRouterPlanRef `json:"Plan"`
	Remark      map[string]any   `json:"Remark,omitempty"`
	Settings    map[string]any   `json:"Settings,omitempty"`
}

// VpcRouterPlanRef references a VPC router plan by id.
type VpcRouterPlanRef struct {
	ID VpcRouterPlanID `json:"ID"`
}

func (s *ApplianceSpec) Validate() error {
	switch {
	case s.Class == "":
		return &FieldMissingError{Field: "Class"}
	case s.Name == "":
		return &FieldMissingError{Field: "Name"}
	case s.Plan.ID.IsZero():
		return &FieldMissingError{Field: "Plan"}
	}
	return nil
}

// GetApplianceByName resolves the single appliance with that name, or nil.
func (c *Client) GetApplianceByName(ctx context.Context, name string) (*Appliance, error) {
	raw, err := c.SearchByName(ctx, KindAppliance, name)
	if err != nil || raw == nil {
		return nil, err
	}
	return decodeResource[Appliance](KindAppliance, raw)
}

// CreateAppliance creates an appliance from spec.
func (c *Client) CreateAppliance(ctx context.Context, spec ApplianceSpec) (*Appliance, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	raw, err := c.Create(ctx, KindAppliance, spec)
	if err != nil {
		return nil, err
	}
	return decodeResource[Appliance](KindAppliance, raw)
}

// GetAppliance refetches an appliance by id.
func (c *Client) GetAppliance(ctx context.Context, id ApplianceID) (*Appliance, error) {
	raw, err := c.Fetch(ctx, KindAppliance, id.ID)
	if err != nil {
		return nil, err
	}
	return decodeResource[Appliance](KindAppliance, raw)
}

// UpdateApplianceSettings PUTs a settings-only appliance payload. The change
// is staged on the provider side until ApplyApplianceConfig commits it.
func (c *Client) UpdateApplianceSettings(ctx context.Context, id ApplianceID, settings map[string]any) error {
	path := fmt.Sprintf("appliance/%s", id)
	body := map[string]any{
		KindAppliance.SingleName(): map[string]any{"Settings": settings},
	}
	return c.Update(ctx, path, body)
}

// ApplyApplianceConfig commits pending configuration. Settings updates are
// staged until this is called.
func (c *Client) ApplyApplianceConfig(ctx context.Context, id ApplianceID) error {
	return c.Update(ctx, fmt.Sprintf("appliance/%s/config", id), nil)
}

// ConnectApplianceToSwitch attaches interface 1 of the appliance to a switch.
func (c *Client) ConnectApplianceToSwitch(ctx context.Context, id ApplianceID, switchID SwitchID) error {
	return c.Update(ctx, fmt.Sprintf("appliance/%s/interface/1/to/switch/%s", id, switchID), nil)
}

// ConnectedAppliances lists the appliances attached to a switch.
func (c *Client) ConnectedAppliances(ctx context.Context, switchID SwitchID) ([]Appliance, error) {
	path := fmt.Sprintf("switch/%s/appliance", switchID)
	values, err := c.Search(ctx, path, KindAppliance.PluralName(), SearchOptions{})
	if err != nil {
		return nil, err
	}
	appliances := make([]Appliance, 0, len(values))
	for _, raw := range values {
		a, err := decodeResource[Appliance](KindAppliance, raw)
		if err != nil {
			return nil, err
		}
		appliances = append(appliances, *a)
	}
	return appliances, nil
}

// ApplianceConnectedToSwitch reports whether the appliance appears in the
// switch's connected-appliance listing.
func (c *Client) ApplianceConnectedToSwitch(ctx context.Context, id ApplianceID, switchID SwitchID) (bool, error) {
	appliances, err := c.ConnectedAppliances(ctx, switchID)
	if err != nil {
		return false, err
	}
	for _, a := range appliances {
		if a.ID == id {
			return true, nil
		}
	}
	return false, nil
}
