package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newSyncRemoteDirCommand() *cobra.Command {
	var (
		prefix    string
		localDir  string
		remoteDir string
	)

	cmd := &cobra.Command{
		Use:     "sync-remote-dir",
		Short:   "Upload a local directory to the environment's server",
		Example: `  sacenv sync-remote-dir --prefix dev --local ./dotfiles --remote dotfiles`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := dialEnvironment(cmd.Context(), prefix)
			if err != nil {
				return err
			}
			defer session.Close()

			if err := session.SyncDir(cmd.Context(), localDir, remoteDir); err != nil {
				return err
			}
			log.Info().Str("local", localDir).Str("remote", remoteDir).Msg("directory synced")
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "equipment name prefix")
	cmd.Flags().StringVar(&localDir, "local", "", "local directory to upload")
	cmd.Flags().StringVar(&remoteDir, "remote", "", "remote directory to upload into")
	_ = cmd.MarkFlagRequired("prefix")
	_ = cmd.MarkFlagRequired("local")
	_ = cmd.MarkFlagRequired("remote")

	return cmd
}
