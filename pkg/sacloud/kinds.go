package sacloud

// ResourceKind identifies one of the provider resource families the client
// knows how to talk to. Each kind carries the three wire-level constants the
// API derives everything else from: the singular JSON key used in request and
// response envelopes, the plural JSON key used as the array key in search
// responses, and the URL path segment.
type ResourceKind int

const (
	KindServer ResourceKind = iota
	KindDisk
	KindSSHKey
	KindSwitch
	KindAppliance
	KindArchive
	KindServerPlan
	KindDiskPlan
	KindNote
)

type kindInfo struct {
	single string
	plural string
	path   string
}

var kindTable = map[ResourceKind]kindInfo{
	KindServer:     {"Server", "Servers", "server"},
	KindDisk:       {"Disk", "Disks", "disk"},
	KindSSHKey:     {"SSHKey", "SSHKeys", "sshkey"},
	KindSwitch:     {"Switch", "Switches", "switch"},
	KindAppliance:  {"Appliance", "Appliances", "appliance"},
	KindArchive:    {"Archive", "Archives", "archive"},
	KindServerPlan: {"ServerPlan", "ServerPlans", "product/server"},
	KindDiskPlan:   {"DiskPlan", "DiskPlans", "product/disk"},
	KindNote:       {"Note", "Notes", "note"},
}

// SingleName returns the singular JSON key for the kind ("Server", "Disk", ...).
func (k ResourceKind) SingleName() string { return kindTable[k].single }

// PluralName returns the array key used in search responses ("Servers", ...).
func (k ResourceKind) PluralName() string { return kindTable[k].plural }

// Path returns the URL path segment for the kind ("server", "product/disk", ...).
func (k ResourceKind) Path() string { return kindTable[k].path }

func (k ResourceKind) String() string { return kindTable[k].single }
