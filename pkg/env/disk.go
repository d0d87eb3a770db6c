package env

import (
	"context"

	"github.com/sacenv/sacenv/pkg/sacloud"
)

const diskPlan = 4

// noteVariables are the render variables passed to the attached startup
// note. The provider's official note template recognizes these two.
var noteVariables = map[string]any{
	"usacloud":      false,
	"updatepackage": true,
}

// FindDisk resolves the environment's boot disk, or nil when absent.
func (e *Environment) FindDisk(ctx context.Context) (*sacloud.Disk, error) {
	return e.client.GetDiskByName(ctx, KindPrimaryServerDisk.Name(e.prefix))
}

// CreateDisk creates the boot disk from the archive, attaches it to the
// server, and applies the initial configuration: private addressing behind
// the router, the registered public key, and the setup note. An empty
// password disables password authentication entirely.
func (e *Environment) CreateDisk(
	ctx context.Context,
	serverID sacloud.ServerID,
	archiveID sacloud.ArchiveID,
	sshKeyID sacloud.SSHKeyID,
	noteID sacloud.NoteID,
	password string,
) (*sacloud.Disk, error) {
	name := KindPrimaryServerDisk.Name(e.prefix)
	spec := sacloud.DiskSpec{
		Name:          name,
		Description:   name,
		Plan:          sacloud.DiskPlanRef{ID: sacloud.DiskPlanID{ID: sacloud.NumericID(diskPlan)}},
		SourceArchive: sacloud.ArchiveRef{ID: archiveID},
		SizeMB:        defaultDiskSizeMB,
		Connection:    sacloud.ConnectionVirtio,
		Server:        sacloud.ServerRef{ID: serverID},
	}
	edit := sacloud.DiskEditSpec{
		Password:      password,
		HostName:      name,
		SSHKeys:       []sacloud.SSHKeyRef{{ID: sshKeyID}},
		DisablePWAuth: password == "",
		UserIPAddress: ServerPrivateIP,
		UserSubnet: sacloud.IPv4Net{
			DefaultRoute:   RouterPrivateIP,
			NetworkMaskLen: PrivateMaskLen,
		},
		Notes: []sacloud.NoteRef{{ID: noteID, Variables: noteVariables}},
	}
	return e.client.CreateDisk(ctx, spec, edit)
}

// LatestOSArchive resolves the newest public archive for the pinned OS tag.
func (e *Environment) LatestOSArchive(ctx context.Context) (*sacloud.Archive, error) {
	return e.client.LatestPublicArchive(ctx, []string{archiveOSTag})
}
