package env

import (
	"testing"
)

func routerBlock(t *testing.T, settings map[string]any) map[string]any {
	t.Helper()
	router, ok := settings["Router"].(map[string]any)
	if !ok {
		t.Fatal("settings missing Router block")
	}
	return router
}

func TestRouterSettingsFirewallToggle(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		want    string
	}{
		{name: "enabled", enabled: true, want: "True"},
		{name: "disabled", enabled: false, want: "False"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := routerBlock(t, routerSettings(tt.enabled, "203.0.113.7"))
			fw := router["Firewall"].(map[string]any)
			if got := fw["Enabled"]; got != tt.want {
				t.Errorf("expected Enabled %q, got %v", tt.want, got)
			}
		})
	}
}

func TestRouterSettingsEnabledFlagsAreStrings(t *testing.T) {
	// Real JSON booleans in appliance settings are rejected by the API, so
	// every Enabled flag must serialize as "True" or "False".
	router := routerBlock(t, routerSettings(true, ""))
	for _, block := range []string{"Firewall", "PortForwarding", "WireGuardServer", "PPTPServer", "L2TPIPsecServer"} {
		section, ok := router[block].(map[string]any)
		if !ok {
			t.Fatalf("missing %s block", block)
		}
		switch section["Enabled"] {
		case "True", "False":
		default:
			t.Errorf("%s Enabled is %v, not a wire boolean string", block, section["Enabled"])
		}
	}
}

func TestRouterSettingsOperatorRules(t *testing.T) {
	tests := []struct {
		name       string
		operatorIP string
		wantRules  int
	}{
		{name: "with operator ip", operatorIP: "203.0.113.7", wantRules: 2},
		{name: "operator ip unknown", operatorIP: "", wantRules: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := routerBlock(t, routerSettings(true, tt.operatorIP))
			fw := router["Firewall"].(map[string]any)
			config := fw["Config"].([]any)[0].(map[string]any)

			for _, direction := range []string{"Receive", "Send"} {
				rules := config[direction].([]any)
				if len(rules) != tt.wantRules {
					t.Fatalf("%s: expected %d rules, got %d", direction, tt.wantRules, len(rules))
				}
				last := rules[len(rules)-1].(map[string]any)
				if last["Action"] != "deny" {
					t.Errorf("%s: final rule must deny, got %v", direction, last["Action"])
				}
				if tt.operatorIP == "" {
					continue
				}
				first := rules[0].(map[string]any)
				if first["Action"] != "allow" {
					t.Errorf("%s: first rule must allow the operator, got %v", direction, first["Action"])
				}
				key := "SourceNetwork"
				if direction == "Send" {
					key = "DestinationNetwork"
				}
				if first[key] != tt.operatorIP+"/32" {
					t.Errorf("%s: expected %s %s/32, got %v", direction, key, tt.operatorIP, first[key])
				}
			}
		})
	}
}

func TestRouterSettingsPortForwarding(t *testing.T) {
	router := routerBlock(t, routerSettings(true, ""))
	pf := router["PortForwarding"].(map[string]any)
	rule := pf["Config"].([]any)[0].(map[string]any)

	if rule["GlobalPort"] != ForwardedSSHPort {
		t.Errorf("expected global port %s, got %v", ForwardedSSHPort, rule["GlobalPort"])
	}
	if rule["PrivateAddress"] != ServerPrivateIP {
		t.Errorf("expected private address %s, got %v", ServerPrivateIP, rule["PrivateAddress"])
	}
	if rule["PrivatePort"] != "22" {
		t.Errorf("expected private port 22, got %v", rule["PrivatePort"])
	}
	if rule["Protocol"] != "tcp" {
		t.Errorf("expected tcp, got %v", rule["Protocol"])
	}
}

func TestRouterSettingsPrivateInterface(t *testing.T) {
	router := routerBlock(t, routerSettings(true, ""))
	ifaces := router["Interfaces"].([]any)
	if len(ifaces) != 2 {
		t.Fatalf("expected 2 interface slots, got %d", len(ifaces))
	}
	if ifaces[0] != nil {
		t.Error("interface 0 must stay untouched")
	}
	private := ifaces[1].(map[string]any)
	addrs := private["IPAddress"].([]any)
	if len(addrs) != 1 || addrs[0] != RouterPrivateIP {
		t.Errorf("expected private address %s, got %v", RouterPrivateIP, addrs)
	}
	if private["NetworkMaskLen"] != PrivateMaskLen {
		t.Errorf("expected mask length %d, got %v", PrivateMaskLen, private["NetworkMaskLen"])
	}
}
