package env

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/sacenv/sacenv/pkg/sacloud"
)

// FindSetupNote resolves the environment's startup script note, or nil when
// absent.
func (e *Environment) FindSetupNote(ctx context.Context) (*sacloud.Note, error) {
	return e.client.GetNoteByName(ctx, KindPrimarySetupNote.Name(e.prefix))
}

// CreateSetupNote registers content as the environment's startup script.
func (e *Environment) CreateSetupNote(ctx context.Context, content string) (*sacloud.Note, error) {
	name := KindPrimarySetupNote.Name(e.prefix)
	return e.client.CreateNote(ctx, sacloud.NoteSpec{
		Name:    name,
		Class:   "shell",
		Content: content,
	})
}

// ReconcileSetupNote compares the registered note content byte for byte
// against content and rewrites it in place when they differ. The note is
// never recreated; its identity is referenced by existing disks.
func (e *Environment) ReconcileSetupNote(ctx context.Context, note *sacloud.Note, content string) error {
	if note.Content == content {
		return nil
	}
	log.Info().Str("note", note.Name).Msg("startup script drifted, rewriting note content")
	return e.client.UpdateNoteContent(ctx, note.ID, content)
}
