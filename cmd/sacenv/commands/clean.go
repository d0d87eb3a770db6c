package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sacenv/sacenv/pkg/workflow"
)

func newCleanCommand() *cobra.Command {
	var (
		prefix string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Tear the environment down",
		Long: `Tear the environment down in reverse dependency order, confirming each
deletion before the next one. The registered SSH key is kept so the
credential can be reused by a later environment.`,
		Example: `  sacenv clean --prefix dev --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !confirm(fmt.Sprintf("delete all equipment with prefix %q?", prefix)) {
				log.Info().Msg("aborted")
				return nil
			}

			cfg, environment, err := newEnvironment(prefix)
			if err != nil {
				return err
			}
			data := scriptData(cfg, prefix)
			engine := workflow.NewEngine(environment, data, newBootstrapFactory(cfg, data))

			if err := engine.Clean(cmd.Context()); err != nil {
				return err
			}
			log.Info().Str("prefix", prefix).Msg("environment removed")
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "equipment name prefix")
	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("prefix")

	return cmd
}

func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
