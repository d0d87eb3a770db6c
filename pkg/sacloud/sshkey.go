package sacloud

import "context"

// SSHPublicKey is a registered credential resource.
type SSHPublicKey struct {
	ID        SSHKeyID `json:"ID"`
	Name      string   `json:"Name"`
	PublicKey string   `json:"PublicKey"`
}

// SSHKeySpec is the creation payload for a public key.
type SSHKeySpec struct {
	Name        string `json:"Name"`
	Description string `json:"Description,omitempty"`
	PublicKey   string `json:"PublicKey"`
}

func (s *SSHKeySpec) Validate() error {
	if s.Name == "" {
		return &FieldMissingError{Field: "Name"}
	}
	if s.PublicKey == "" {
		return &FieldMissingError{Field: "PublicKey"}
	}
	return nil
}

// GetSSHKeyByName resolves the single key with that name, or nil.
func (c *Client) GetSSHKeyByName(ctx context.Context, name string) (*SSHPublicKey, error) {
	raw, err := c.SearchByName(ctx, KindSSHKey, name)
	if err != nil || raw == nil {
		return nil, err
	}
	return decodeResource[SSHPublicKey](KindSSHKey, raw)
}

// CreateSSHKey registers a public key.
func (c *Client) CreateSSHKey(ctx context.Context, spec SSHKeySpec) (*SSHPublicKey, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	raw, err := c.Create(ctx, KindSSHKey, spec)
	if err != nil {
		return nil, err
	}
	return decodeResource[SSHPublicKey](KindSSHKey, raw)
}
