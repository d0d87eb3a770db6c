package sacloud

import "context"

// ServerPlan is a server sizing product. Plans are read-only catalogue
// entries; the workflows reference well-known plan ids and only look one up
// when validating configuration.
type ServerPlan struct {
	ID   ServerPlanID `json:"ID"`
	Name string       `json:"Name"`
}

// DiskPlan is a disk product. Disk plan ids are the one kind the provider
// serialises as bare integers.
type DiskPlan struct {
	ID   DiskPlanID `json:"ID"`
	Name string     `json:"Name"`
}

// GetServerPlanByName resolves the single server plan with that name, or nil.
func (c *Client) GetServerPlanByName(ctx context.Context, name string) (*ServerPlan, error) {
	raw, err := c.SearchByName(ctx, KindServerPlan, name)
	if err != nil || raw == nil {
		return nil, err
	}
	return decodeResource[ServerPlan](KindServerPlan, raw)
}

// GetDiskPlanByName resolves the single disk plan with that name, or nil.
func (c *Client) GetDiskPlanByName(ctx context.Context, name string) (*DiskPlan, error) {
	raw, err := c.SearchByName(ctx, KindDiskPlan, name)
	if err != nil || raw == nil {
		return nil, err
	}
	return decodeResource[DiskPlan](KindDiskPlan, raw)
}
