package commands

import (
	"github.com/spf13/cobra"
)

func newPortForwardingCommand() *cobra.Command {
	var (
		prefix     string
		localAddr  string
		remoteAddr string
	)

	cmd := &cobra.Command{
		Use:   "port-forwarding",
		Short: "Forward a local port to the environment's server",
		Long: `Listen on a local address and tunnel every connection through SSH to an
address reachable from the server. Runs until interrupted; the session is
closed after the listener shuts down.`,
		Example: `  # Reach a service on the server's localhost
  sacenv port-forwarding --prefix dev --local 127.0.0.1:8080 --remote 127.0.0.1:8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := dialEnvironment(cmd.Context(), prefix)
			if err != nil {
				return err
			}
			defer session.Close()

			return session.Forward(cmd.Context(), localAddr, remoteAddr)
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "equipment name prefix")
	cmd.Flags().StringVar(&localAddr, "local", "", "local listen address (host:port)")
	cmd.Flags().StringVar(&remoteAddr, "remote", "", "target address as seen from the server (host:port)")
	_ = cmd.MarkFlagRequired("prefix")
	_ = cmd.MarkFlagRequired("local")
	_ = cmd.MarkFlagRequired("remote")

	return cmd
}
