package env

import (
	"context"

	"github.com/sacenv/sacenv/pkg/sacloud"
)

const serverPlan = "100001001"

// FindServer resolves the environment's server, or nil when absent.
func (e *Environment) FindServer(ctx context.Context) (*sacloud.Server, error) {
	return e.client.GetServerByName(ctx, KindPrimaryServer.Name(e.prefix))
}

// CreateServer creates the server attached to the private switch. The boot
// disk is created separately and hotplugged, so disk migration is awaited
// at attach time.
func (e *Environment) CreateServer(ctx context.Context, switchID sacloud.SwitchID) (*sacloud.Server, error) {
	name := KindPrimaryServer.Name(e.prefix)
	spec := sacloud.ServerSpec{
		Name:              name,
		ServerPlan:        sacloud.ServerPlanRef{ID: sacloud.ServerPlanID{ID: sacloud.StringID(serverPlan)}},
		Description:       name,
		HostName:          name,
		InterfaceDriver:   sacloud.DriverVirtio,
		ConnectedSwitches: []sacloud.SwitchRef{{ID: switchID}},
		WaitDiskMigration: true,
	}
	return e.client.CreateServer(ctx, spec)
}
