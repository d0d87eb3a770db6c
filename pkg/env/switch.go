package env

import (
	"context"

	"github.com/sacenv/sacenv/pkg/sacloud"
)

// FindSwitch resolves the environment's private switch, or nil when absent.
func (e *Environment) FindSwitch(ctx context.Context) (*sacloud.Switch, error) {
	return e.client.GetSwitchByName(ctx, KindPrimarySwitch.Name(e.prefix))
}

// CreateSwitch creates the private switch.
func (e *Environment) CreateSwitch(ctx context.Context) (*sacloud.Switch, error) {
	name := KindPrimarySwitch.Name(e.prefix)
	return e.client.CreateSwitch(ctx, sacloud.SwitchSpec{Name: name, Description: name})
}
