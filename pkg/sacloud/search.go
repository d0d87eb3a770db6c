package sacloud

import (
	"context"
	"encoding/json"
	"net/http"
)

const searchPageSize = 50

// SearchOptions narrows a paginated search. Filter and Sort are forwarded to
// the provider verbatim inside the query object.
type SearchOptions struct {
	Filter any
	Sort   any
}

type searchQuery struct {
	From   uint64 `json:"From"`
	Count  uint64 `json:"Count"`
	Filter any    `json:"Filter,omitempty"`
	Sort   any    `json:"Sort,omitempty"`
}

type searchPage struct {
	Total *uint64 `json:"Total"`
	From  *uint64 `json:"From"`
	Count *uint64 `json:"Count"`
}

// Search walks a paginated listing under path, collecting the arrays found
// under pluralKey until From+Count covers Total. The response must echo the
// requested From; a mismatch is a protocol error, not a retry condition.
func (c *Client) Search(ctx context.Context, path, pluralKey string, opts SearchOptions) ([]json.RawMessage, error) {
	var results []json.RawMessage
	var from uint64

	for {
		query := searchQuery{
			From:   from,
			Count:  searchPageSize,
			Filter: opts.Filter,
			Sort:   opts.Sort,
		}
		raw, err := c.request(ctx, http.MethodGet, path, query, nil)
		if err != nil {
			return nil, err
		}

		var page searchPage
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, &DecodeError{Path: path, Err: err}
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, &DecodeError{Path: path, Err: err}
		}

		if page.Total == nil {
			return nil, &SearchError{Path: path, Reason: SearchInvalidTotal, Raw: raw}
		}
		if page.From == nil {
			return nil, &SearchError{Path: path, Reason: SearchInvalidFrom, Raw: raw}
		}
		if *page.From != from {
			return nil, &SearchError{Path: path, Reason: SearchFromMismatch, WantFrom: from, GotFrom: *page.From}
		}
		if page.Count == nil {
			return nil, &SearchError{Path: path, Reason: SearchInvalidCount, Raw: raw}
		}

		arrRaw, ok := fields[pluralKey]
		if !ok {
			return nil, &SearchError{Path: path, Reason: SearchInvalidArray, Raw: raw}
		}
		var arr []json.RawMessage
		if err := json.Unmarshal(arrRaw, &arr); err != nil {
			return nil, &SearchError{Path: path, Reason: SearchInvalidArray, Raw: raw}
		}
		results = append(results, arr...)

		if from+*page.Count >= *page.Total {
			return results, nil
		}
		from += *page.Count
	}
}

// searchOne narrows a search to exactly-one-or-none. More than one match is a
// hard error; this code path backs the naming-convention idempotency checks,
// so guessing between duplicates is never safe.
func (c *Client) searchOne(ctx context.Context, kind ResourceKind, filter any) (json.RawMessage, error) {
	values, err := c.Search(ctx, kind.Path(), kind.PluralName(), SearchOptions{Filter: filter})
	if err != nil {
		return nil, err
	}
	switch len(values) {
	case 0:
		return nil, nil
	case 1:
		return values[0], nil
	default:
		return nil, &TooManyResourcesError{Kind: kind.PluralName(), Count: len(values)}
	}
}

// SearchByName resolves the single resource of kind with exactly that name,
// or nil when absent.
func (c *Client) SearchByName(ctx context.Context, kind ResourceKind, name string) (json.RawMessage, error) {
	return c.searchOne(ctx, kind, map[string]any{"Name": []string{name}})
}

// SearchOneByTags resolves the single resource carrying all the given tags,
// or nil when absent.
func (c *Client) SearchOneByTags(ctx context.Context, kind ResourceKind, tags []string) (json.RawMessage, error) {
	return c.searchOne(ctx, kind, map[string]any{"Tags": tags})
}
