package env

import (
	"context"

	"github.com/sacenv/sacenv/pkg/sacloud"
)

// FindSSHKey resolves the environment's registered public key, or nil when
// absent.
func (e *Environment) FindSSHKey(ctx context.Context) (*sacloud.SSHPublicKey, error) {
	return e.client.GetSSHKeyByName(ctx, KindPrimaryServerSSHKey.Name(e.prefix))
}

// CreateSSHKey registers publicKey under the environment's key name.
func (e *Environment) CreateSSHKey(ctx context.Context, publicKey string) (*sacloud.SSHPublicKey, error) {
	name := KindPrimaryServerSSHKey.Name(e.prefix)
	return e.client.CreateSSHKey(ctx, sacloud.SSHKeySpec{
		Name:        name,
		Description: name,
		PublicKey:   publicKey,
	})
}
