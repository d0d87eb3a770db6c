package env

import "testing"

func TestEquipmentNames(t *testing.T) {
	tests := []struct {
		name string
		kind EquipmentKind
		want string
	}{
		{name: "server", kind: KindPrimaryServer, want: "dev-server"},
		{name: "disk shares the server name", kind: KindPrimaryServerDisk, want: "dev-server"},
		{name: "ssh key", kind: KindPrimaryServerSSHKey, want: "dev-pub-key"},
		{name: "switch", kind: KindPrimarySwitch, want: "dev-switch"},
		{name: "vpc router", kind: KindPrimaryVpcRouter, want: "dev-vpc-router"},
		{name: "setup note", kind: KindPrimarySetupNote, want: "dev-setup-script"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.Name("dev"); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
