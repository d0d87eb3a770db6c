package sacloud

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// statusSets parameterises the generic wait loop: where to read the status
// from the raw resource, and the bounded vocabulary it may take. Any status
// outside the three sets aborts the wait immediately.
type statusSets struct {
	accessor func(json.RawMessage) (string, bool)
	working  map[string]bool
	success  map[string]bool
	failure  map[string]bool
}

func availabilityStatus(raw json.RawMessage) (string, bool) {
	var v struct {
		Availability string `json:"Availability"`
	}
	if err := json.Unmarshal(raw, &v); err != nil || v.Availability == "" {
		return "", false
	}
	return v.Availability, true
}

func instanceStatus(raw json.RawMessage) (string, bool) {
	var v struct {
		Instance struct {
			Status string `json:"Status"`
		} `json:"Instance"`
	}
	if err := json.Unmarshal(raw, &v); err != nil || v.Instance.Status == "" {
		return "", false
	}
	return v.Instance.Status, true
}

var (
	availabilitySets = statusSets{
		accessor: availabilityStatus,
		working:  map[string]bool{"uploading": true, "migrating": true},
		success:  map[string]bool{"available": true},
		failure:  map[string]bool{"failed": true},
	}
	powerUpSets = statusSets{
		accessor: instanceStatus,
		working:  map[string]bool{"cleaning": true},
		success:  map[string]bool{"up": true},
		failure:  map[string]bool{"down": true},
	}
	powerDownSets = statusSets{
		accessor: instanceStatus,
		working:  map[string]bool{"cleaning": true, "up": true},
		success:  map[string]bool{"down": true},
		failure:  map[string]bool{},
	}
)

// waitStatus polls the resource until its status lands in the success set.
// A status in the failure set, or one unknown to all three sets, fails
// immediately without further polling. The loop is bounded by the client's
// wait timeout; the provider-side stall case is not left unbounded.
func (c *Client) waitStatus(ctx context.Context, kind ResourceKind, id ID, sets statusSets) error {
	path := fmt.Sprintf("%s/%s", kind.Path(), id)
	deadline := time.Now().Add(c.waitTimeout)

	for {
		raw, err := c.requestResource(ctx, http.MethodGet, path, kind.SingleName(), nil)
		if err != nil {
			return err
		}
		status, ok := sets.accessor(raw)
		if !ok {
			return &WaitError{Path: path, Reason: WaitStatusMissing, Resource: raw}
		}
		switch {
		case sets.failure[status]:
			return &WaitError{Path: path, Reason: WaitStatusFailed, Status: status, Resource: raw}
		case sets.success[status]:
			return nil
		case !sets.working[status]:
			return &WaitError{Path: path, Reason: WaitStatusUnknown, Status: status, Resource: raw}
		}

		if time.Now().After(deadline) {
			return &WaitError{Path: path, Reason: WaitTimeout, Status: status}
		}
		select {
		case <-ctx.Done():
			return &RequestError{Path: path, Err: ctx.Err()}
		case <-time.After(c.statusPollInterval):
		}
	}
}

// WaitAvailable blocks until the resource reports a terminal availability,
// failing on "failed".
func (c *Client) WaitAvailable(ctx context.Context, kind ResourceKind, id ID) error {
	return c.waitStatus(ctx, kind, id, availabilitySets)
}

// WaitUp blocks until the resource's instance reports "up".
func (c *Client) WaitUp(ctx context.Context, kind ResourceKind, id ID) error {
	return c.waitStatus(ctx, kind, id, powerUpSets)
}

// WaitDown blocks until the resource's instance reports "down".
func (c *Client) WaitDown(ctx context.Context, kind ResourceKind, id ID) error {
	return c.waitStatus(ctx, kind, id, powerDownSets)
}

// WaitDeleted polls GET on the resource until the provider answers not-found.
// Any successful fetch means the delete is still in flight; any error other
// than not-found propagates.
func (c *Client) WaitDeleted(ctx context.Context, kind ResourceKind, id ID) error {
	path := fmt.Sprintf("%s/%s", kind.Path(), id)
	deadline := time.Now().Add(c.waitTimeout)

	for {
		_, err := c.requestResource(ctx, http.MethodGet, path, kind.SingleName(), nil)
		if IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}

		if time.Now().After(deadline) {
			return &WaitError{Path: path, Reason: WaitTimeout}
		}
		select {
		case <-ctx.Done():
			return &RequestError{Path: path, Err: ctx.Err()}
		case <-time.After(c.deletePollInterval):
		}
	}
}
