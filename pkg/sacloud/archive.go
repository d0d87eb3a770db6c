package sacloud

import "context"

// Archive is a disk image resource. The workflows only ever read its id.
type Archive struct {
	ID           ArchiveID    `json:"ID"`
	Name         string       `json:"Name"`
	Availability Availability `json:"Availability"`
}

// LatestPublicArchive resolves the single public archive carrying all the
// given tags. The provider keeps exactly one archive tagged as "latest" per
// OS release, so more than one match is an error, not a choice.
func (c *Client) LatestPublicArchive(ctx context.Context, tags []string) (*Archive, error) {
	raw, err := c.SearchOneByTags(ctx, KindArchive, tags)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, &NotFoundError{Kind: KindArchive.SingleName()}
	}
	return decodeResource[Archive](KindArchive, raw)
}
