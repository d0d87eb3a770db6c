package remote

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// SyncDir recursively uploads localPath under remotePath, recreating the
// directory layout and preserving file modes.
func (s *Session) SyncDir(ctx context.Context, localPath, remotePath string) error {
	log.Debug().
		Str("local", localPath).
		Str("remote", remotePath).
		Msg("uploading directory")

	err := filepath.Walk(localPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(localPath, path)
		if err != nil {
			return err
		}
		targetPath := filepath.Join(remotePath, relPath)

		if info.IsDir() {
			log.Debug().Str("dir", targetPath).Msg("creating remote directory")
			if err := s.sftp.MkdirAll(targetPath); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", targetPath, err)
			}
		} else {
			if err := s.uploadFile(path, targetPath, info.Mode().Perm()); err != nil {
				return fmt.Errorf("failed to upload file %s: %w", path, err)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		return nil
	})
	if err != nil {
		return &SessionError{Op: "sync-dir", Err: err}
	}

	log.Info().
		Str("local", localPath).
		Str("remote", remotePath).
		Msg("directory uploaded")
	return nil
}

func (s *Session) uploadFile(localPath, remotePath string, mode os.FileMode) error {
	localFile, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer localFile.Close()

	if err := s.PutFile(remotePath, localFile); err != nil {
		return err
	}
	return s.sftp.Chmod(remotePath, mode)
}
