package env

import (
	"context"

	"github.com/sacenv/sacenv/pkg/sacloud"
)

const vpcRouterPlan = 1

// FindVpcRouter resolves the environment's VPC router, or nil when absent.
func (e *Environment) FindVpcRouter(ctx context.Context) (*sacloud.Appliance, error) {
	return e.client.GetApplianceByName(ctx, KindPrimaryVpcRouter.Name(e.prefix))
}

// CreateVpcRouter creates the standard-plan router on the shared segment.
// Enabled flags inside appliance settings are string-typed on the wire;
// real booleans come back as a bad request.
func (e *Environment) CreateVpcRouter(ctx context.Context) (*sacloud.Appliance, error) {
	name := KindPrimaryVpcRouter.Name(e.prefix)
	spec := sacloud.ApplianceSpec{
		Class:       "vpcrouter",
		Name:        name,
		Description: name,
		Plan:        sacloud.VpcRouterPlanRef{ID: sacloud.VpcRouterPlanID{ID: sacloud.NumericID(vpcRouterPlan)}},
		Remark: map[string]any{
			"Router":  map[string]any{"VPCRouterVersion": 2},
			"Servers": []any{map[string]any{}},
			"Switch":  map[string]any{"Scope": "shared"},
		},
		Settings: map[string]any{
			"Router": map[string]any{
				"InternetConnection": map[string]any{"Enabled": "True"},
			},
		},
	}
	return e.client.CreateAppliance(ctx, spec)
}

// ApplyRouterNetworkConfig stages the full network settings on the router,
// commits them, and waits until the router settles. firewallEnabled toggles
// only the firewall; the private interface, port forwarding and disabled VPN
// servers are reasserted on every call so the settings stay convergent.
func (e *Environment) ApplyRouterNetworkConfig(ctx context.Context, id sacloud.ApplianceID, firewallEnabled bool) error {
	operatorIP, _ := e.publicIP(ctx)
	settings := routerSettings(firewallEnabled, operatorIP)
	if err := e.client.UpdateApplianceSettings(ctx, id, settings); err != nil {
		return err
	}
	if err := e.client.ApplyApplianceConfig(ctx, id); err != nil {
		return err
	}
	return e.client.WaitAvailable(ctx, sacloud.KindAppliance, id.ID)
}

func routerSettings(firewallEnabled bool, operatorIP string) map[string]any {
	var receive, send []any
	if operatorIP != "" {
		receive = append(receive, map[string]any{
			"Protocol": "ip", "SourceNetwork": operatorIP + "/32",
			"Action": "allow", "Description": "local",
		})
		send = append(send, map[string]any{
			"Protocol": "ip", "DestinationNetwork": operatorIP + "/32",
			"Action": "allow", "Description": "local",
		})
	}
	receive = append(receive, map[string]any{"Protocol": "ip", "Action": "deny", "Description": "otherwise"})
	send = append(send, map[string]any{"Protocol": "ip", "Action": "deny", "Description": "otherwise"})

	return map[string]any{
		"Router": map[string]any{
			// Interface 0 is the shared global segment and stays untouched.
			"Interfaces": []any{
				nil,
				map[string]any{"IPAddress": []any{RouterPrivateIP}, "NetworkMaskLen": PrivateMaskLen},
			},
			"Firewall": map[string]any{
				"Config":  []any{map[string]any{"Receive": receive, "Send": send}},
				"Enabled": wireBool(firewallEnabled),
			},
			"PortForwarding": map[string]any{
				"Config": []any{map[string]any{
					"Protocol":       "tcp",
					"GlobalPort":     ForwardedSSHPort,
					"PrivateAddress": ServerPrivateIP,
					"PrivatePort":    serverSSHPort,
				}},
				"Enabled": "True",
			},
			"WireGuardServer": map[string]any{
				"Config":  map[string]any{"IPAddress": "", "Peers": []any{}},
				"Enabled": "False",
			},
			"PPTPServer":      map[string]any{"Enabled": "False"},
			"L2TPIPsecServer": map[string]any{"Enabled": "False"},
		},
	}
}

func wireBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
