package sacloud

import (
	"context"
	"fmt"
)

// Note is a startup-script resource attached to disks at creation time.
type Note struct {
	ID      NoteID `json:"ID"`
	Name    string `json:"Name"`
	Class   string `json:"Class"`
	Content string `json:"Content"`
}

// NoteSpec is the creation payload for a note.
type NoteSpec struct {
	Name    string `json:"Name"`
	Class   string `json:"Class,omitempty"`
	Content string `json:"Content"`
}

func (s *NoteSpec) Validate() error {
	if s.Name == "" {
		return &FieldMissingError{Field: "Name"}
	}
	if s.Content == "" {
		return &FieldMissingError{Field: "Content"}
	}
	return nil
}

// GetNoteByName resolves the single note with that name, or nil.
func (c *Client) GetNoteByName(ctx context.Context, name string) (*Note, error) {
	raw, err := c.SearchByName(ctx, KindNote, name)
	if err != nil || raw == nil {
		return nil, err
	}
	return decodeResource[Note](KindNote, raw)
}

// CreateNote creates a note from spec.
func (c *Client) CreateNote(ctx context.Context, spec NoteSpec) (*Note, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if spec.Class == "" {
		spec.Class = "shell"
	}
	raw, err := c.Create(ctx, KindNote, spec)
	if err != nil {
		return nil, err
	}
	return decodeResource[Note](KindNote, raw)
}

// UpdateNoteContent replaces a note's script body in place.
func (c *Client) UpdateNoteContent(ctx context.Context, id NoteID, content string) error {
	path := fmt.Sprintf("note/%s", id)
	body := map[string]any{KindNote.SingleName(): map[string]any{"Content": content}}
	return c.Update(ctx, path, body)
}
