package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sacenv/sacenv/pkg/workflow"
)

func newUpdateCommand() *cobra.Command {
	var (
		prefix      string
		pubkeyPath  string
		privkeyPath string
		password    string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Converge the environment to its target shape",
		Long: `Converge the environment: create whatever equipment is missing, verify
the topology of whatever already exists, and bootstrap a newly created
server over SSH. Safe to re-run after a failure.

A login method (--pubkey or --password) is only required when the server
does not exist yet.`,
		Example: `  # First run, registering a public key
  sacenv update --prefix dev --pubkey ~/.ssh/id_ed25519.pub

  # Re-run over an existing environment
  sacenv update --prefix dev`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var publicKey string
			if pubkeyPath != "" {
				data, err := os.ReadFile(pubkeyPath)
				if err != nil {
					return fmt.Errorf("failed to read public key %s: %w", pubkeyPath, err)
				}
				publicKey = string(data)
			}

			cfg, environment, err := newEnvironment(prefix)
			if err != nil {
				return err
			}
			if privkeyPath != "" {
				cfg.Remote.PrivateKeyPath = privkeyPath
			}
			data := scriptData(cfg, prefix)
			engine := workflow.NewEngine(environment, data, newBootstrapFactory(cfg, data))

			if err := engine.Update(cmd.Context(), workflow.UpdateParams{
				PublicKey: publicKey,
				Password:  password,
			}); err != nil {
				return err
			}
			log.Info().Str("prefix", prefix).Msg("environment converged")
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "equipment name prefix")
	cmd.Flags().StringVar(&pubkeyPath, "pubkey", "", "path to the SSH public key to register")
	cmd.Flags().StringVar(&privkeyPath, "privkey", "", "private key for the bootstrap connection; overrides the config")
	cmd.Flags().StringVar(&password, "password", "", "server password; omit to disable password auth")
	_ = cmd.MarkFlagRequired("prefix")

	return cmd
}
