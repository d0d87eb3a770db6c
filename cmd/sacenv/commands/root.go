// Package commands wires the CLI surface: flag parsing, config loading,
// and construction of the clients the workflows run on.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sacenv/sacenv/pkg/config"
	"github.com/sacenv/sacenv/pkg/env"
	"github.com/sacenv/sacenv/pkg/remote"
	"github.com/sacenv/sacenv/pkg/sacloud"
	"github.com/sacenv/sacenv/pkg/script"
	"github.com/sacenv/sacenv/pkg/setup"
	"github.com/sacenv/sacenv/pkg/workflow"
)

var configPath string

// Execute runs the root command.
func Execute(ctx context.Context, version, commit string) error {
	rootCmd := newRootCommand(version, commit)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sacenv",
		Short: "sacenv - fixed-topology cloud environment provisioner",
		Long: `sacenv provisions and tears down a personal cloud development
environment with a fixed topology: a VPC router fronting a private switch,
one server with its boot disk, and an SSH bootstrap that finishes the
setup on the host itself. All equipment is named from a single prefix and
converged idempotently: a failed run can simply be re-invoked.`,
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "sacenv.yaml", "config file path")

	rootCmd.AddCommand(newUpdateCommand())
	rootCmd.AddCommand(newCleanCommand())
	rootCmd.AddCommand(newSyncRemoteDirCommand())
	rootCmd.AddCommand(newPortForwardingCommand())

	return rootCmd
}

// newClient builds the resource client from the loaded config.
func newClient(cfg *config.Config) (*sacloud.Client, error) {
	return sacloud.NewClient(sacloud.Credentials{
		Zone:        cfg.Provider.Zone,
		AccessToken: cfg.Provider.AccessToken,
		SecretToken: cfg.Provider.SecretToken,
		BaseURL:     cfg.Provider.BaseURL,
	})
}

// newEnvironment loads the config and builds the environment for prefix.
func newEnvironment(prefix string) (*config.Config, *env.Environment, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	client, err := newClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, env.New(client, prefix), nil
}

// scriptData maps the config's server section onto the template input. The
// host name defaults to the server's equipment name.
func scriptData(cfg *config.Config, prefix string) script.Data {
	hostName := cfg.Server.HostName
	if hostName == "" {
		hostName = env.KindPrimaryServer.Name(prefix)
	}
	return script.Data{
		User:                cfg.Remote.User,
		HostName:            hostName,
		Packages:            cfg.Server.Packages,
		GitName:             cfg.Server.GitName,
		GitEmail:            cfg.Server.GitEmail,
		WireGuardPrivateKey: cfg.Server.WireGuardPrivateKey,
		WireGuardAddress:    cfg.Server.WireGuardAddress,
	}
}

// remoteConfig describes the SSH target behind the router's forwarded
// port.
func remoteConfig(cfg *config.Config, host string) *remote.Config {
	rc := remote.DefaultConfig(host, env.ForwardedSSHPort, cfg.Remote.User, cfg.Remote.PrivateKeyPath)
	rc.PrivateKeyPassphrase = cfg.Remote.PrivateKeyPassphrase
	return rc
}

// newBootstrapFactory builds the remote completion protocol runner for the
// router address discovered during the update run.
func newBootstrapFactory(cfg *config.Config, data script.Data) workflow.BootstrapFactory {
	return func(host string) workflow.Bootstrap {
		dial := func(ctx context.Context) (setup.Host, error) {
			return remote.Dial(ctx, remoteConfig(cfg, host))
		}
		return setup.NewRunner(dial, data)
	}
}

// dialEnvironment resolves the environment's router address and opens an
// SSH session to the server behind it.
func dialEnvironment(ctx context.Context, prefix string) (*remote.Session, error) {
	cfg, environment, err := newEnvironment(prefix)
	if err != nil {
		return nil, err
	}
	router, err := environment.FindVpcRouter(ctx)
	if err != nil {
		return nil, err
	}
	if router == nil || router.GlobalIP() == "" {
		return nil, fmt.Errorf("no reachable vpc router for prefix %q", prefix)
	}
	return remote.Dial(ctx, remoteConfig(cfg, router.GlobalIP()))
}
