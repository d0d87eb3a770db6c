// Package workflow implements the convergence and teardown runs over one
// environment. Every step is idempotent: a failed run can be re-invoked
// and resumes from the observed provider state.
package workflow

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sacenv/sacenv/pkg/env"
	"github.com/sacenv/sacenv/pkg/sacloud"
	"github.com/sacenv/sacenv/pkg/script"
)

// Bootstrap is the remote completion protocol run against the new host
// while the firewall is open.
type Bootstrap interface {
	Prepare(ctx context.Context) error
	WaitForDone(ctx context.Context) error
}

// BootstrapFactory builds the Bootstrap once the target address is known.
type BootstrapFactory func(host string) Bootstrap

// Engine drives the workflows for one environment.
type Engine struct {
	env          *env.Environment
	client       *sacloud.Client
	scriptData   script.Data
	newBootstrap BootstrapFactory
}

// NewEngine builds an Engine over environment. scriptData feeds the setup
// script templates; newBootstrap is invoked with the router's global
// address when the remote phase begins.
func NewEngine(environment *env.Environment, scriptData script.Data, newBootstrap BootstrapFactory) *Engine {
	return &Engine{
		env:          environment,
		client:       environment.Client(),
		scriptData:   scriptData,
		newBootstrap: newBootstrap,
	}
}

// UpdateParams carries the login material for server creation. Both fields
// may be empty when the environment already exists.
type UpdateParams struct {
	// PublicKey is the SSH public key material to register.
	PublicKey string

	// Password for the server; empty disables password authentication.
	Password string
}

// Update converges the environment: every piece of equipment is resolved
// by name and created when absent, each step's postcondition is confirmed
// before the next begins, and the new host is bootstrapped over SSH with
// the firewall temporarily open.
func (e *Engine) Update(ctx context.Context, params UpdateParams) error {
	logger := log.With().
		Str("run_id", uuid.NewString()).
		Str("workflow", "update").
		Str("prefix", e.env.Prefix()).
		Logger()

	// The server not existing means it will be created, which is only
	// possible with login material. Checked before any mutation.
	server, err := e.env.FindServer(ctx)
	if err != nil {
		return err
	}
	if server == nil && params.PublicKey == "" && params.Password == "" {
		return ErrLoginMethodRequired
	}
	logger.Info().Bool("server_exists", server != nil).Msg("login method check passed")

	router, err := e.ensureVpcRouter(ctx, logger)
	if err != nil {
		return err
	}
	sw, err := e.ensureSwitch(ctx, logger, router.ID)
	if err != nil {
		return err
	}
	if err := e.ensureRouterUp(ctx, logger, router.ID); err != nil {
		return err
	}
	note, err := e.ensureSetupNote(ctx, logger)
	if err != nil {
		return err
	}
	server, err = e.ensureServer(ctx, logger, server, sw.ID)
	if err != nil {
		return err
	}
	if err := e.ensureDisk(ctx, logger, server.ID, note.ID, params); err != nil {
		return err
	}
	if err := e.ensureServerUp(ctx, logger, server.ID); err != nil {
		return err
	}

	return e.bootstrap(ctx, logger, router.ID)
}

func (e *Engine) ensureVpcRouter(ctx context.Context, logger zerolog.Logger) (*sacloud.Appliance, error) {
	router, err := e.env.FindVpcRouter(ctx)
	if err != nil {
		return nil, err
	}
	if router == nil {
		logger.Info().Msg("vpc router not found, creating")
		router, err = e.env.CreateVpcRouter(ctx)
		if err != nil {
			return nil, err
		}
		logger.Info().Stringer("id", router.ID).Msg("vpc router created")
	} else {
		logger.Info().Stringer("id", router.ID).Msg("vpc router exists")
	}
	if err := e.client.WaitAvailable(ctx, sacloud.KindAppliance, router.ID.ID); err != nil {
		return nil, err
	}
	logger.Info().Msg("vpc router available")
	return router, nil
}

func (e *Engine) ensureSwitch(ctx context.Context, logger zerolog.Logger, routerID sacloud.ApplianceID) (*sacloud.Switch, error) {
	sw, err := e.env.FindSwitch(ctx)
	if err != nil {
		return nil, err
	}
	if sw != nil {
		logger.Info().Stringer("id", sw.ID).Msg("switch exists")
		connected, err := e.client.ApplianceConnectedToSwitch(ctx, routerID, sw.ID)
		if err != nil {
			return nil, err
		}
		if !connected {
			return nil, &SwitchNotConnectedError{SwitchID: sw.ID, VpcRouterID: routerID}
		}
		logger.Info().Msg("switch connected to vpc router")
		return sw, nil
	}

	logger.Info().Msg("switch not found, creating")
	sw, err = e.env.CreateSwitch(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info().Stringer("id", sw.ID).Msg("switch created")
	if err := e.client.ConnectApplianceToSwitch(ctx, routerID, sw.ID); err != nil {
		return nil, err
	}
	logger.Info().Msg("switch connected to vpc router")
	return sw, nil
}

func (e *Engine) ensureRouterUp(ctx context.Context, logger zerolog.Logger, routerID sacloud.ApplianceID) error {
	router, err := e.client.GetAppliance(ctx, routerID)
	if err != nil {
		return err
	}
	if router.Instance != nil && router.Instance.Status == sacloud.InstanceUp {
		logger.Info().Msg("vpc router already up")
		return e.client.WaitAvailable(ctx, sacloud.KindAppliance, routerID.ID)
	}

	logger.Info().Msg("powering vpc router on")
	if err := e.client.PowerOn(ctx, sacloud.KindAppliance, routerID.ID); err != nil {
		return err
	}
	if err := e.client.WaitUp(ctx, sacloud.KindAppliance, routerID.ID); err != nil {
		return err
	}
	if err := e.client.WaitAvailable(ctx, sacloud.KindAppliance, routerID.ID); err != nil {
		return err
	}
	logger.Info().Msg("vpc router up")
	return nil
}

func (e *Engine) ensureSetupNote(ctx context.Context, logger zerolog.Logger) (*sacloud.Note, error) {
	content, err := script.Render(script.StartupNote, e.scriptData)
	if err != nil {
		return nil, err
	}

	note, err := e.env.FindSetupNote(ctx)
	if err != nil {
		return nil, err
	}
	if note == nil {
		logger.Info().Msg("setup note not found, creating")
		note, err = e.env.CreateSetupNote(ctx, content)
		if err != nil {
			return nil, err
		}
		logger.Info().Stringer("id", note.ID).Msg("setup note created")
		return note, nil
	}

	logger.Info().Stringer("id", note.ID).Msg("setup note exists")
	if err := e.env.ReconcileSetupNote(ctx, note, content); err != nil {
		return nil, err
	}
	return note, nil
}

func (e *Engine) ensureServer(ctx context.Context, logger zerolog.Logger, server *sacloud.Server, switchID sacloud.SwitchID) (*sacloud.Server, error) {
	if server != nil {
		logger.Info().Stringer("id", server.ID).Msg("server exists")
		connected, err := e.client.ServerConnectedToSwitch(ctx, server.ID, switchID)
		if err != nil {
			return nil, err
		}
		if !connected {
			return nil, &ServerNotConnectedError{ServerID: server.ID, SwitchID: switchID}
		}
		logger.Info().Msg("server connected to switch")
		return server, nil
	}

	logger.Info().Msg("server not found, creating")
	server, err := e.env.CreateServer(ctx, switchID)
	if err != nil {
		return nil, err
	}
	logger.Info().Stringer("id", server.ID).Msg("server created")
	return server, nil
}

func (e *Engine) ensureDisk(ctx context.Context, logger zerolog.Logger, serverID sacloud.ServerID, noteID sacloud.NoteID, params UpdateParams) error {
	disk, err := e.env.FindDisk(ctx)
	if err != nil {
		return err
	}
	if disk == nil {
		key, err := e.resolveSSHKey(ctx, logger, params.PublicKey)
		if err != nil {
			return err
		}
		archive, err := e.env.LatestOSArchive(ctx)
		if err != nil {
			return err
		}
		logger.Info().Stringer("archive", archive.ID).Msg("creating disk")
		disk, err = e.env.CreateDisk(ctx, serverID, archive.ID, key.ID, noteID, params.Password)
		if err != nil {
			return err
		}
		logger.Info().Stringer("id", disk.ID).Msg("disk created")
	} else {
		logger.Info().Stringer("id", disk.ID).Msg("disk exists")
	}

	if err := e.client.WaitAvailable(ctx, sacloud.KindDisk, disk.ID.ID); err != nil {
		return err
	}
	if err := e.client.WaitAvailable(ctx, sacloud.KindServer, serverID.ID); err != nil {
		return err
	}
	logger.Info().Msg("disk and server available")
	return nil
}

// resolveSSHKey returns the registered key for the environment, creating
// it from supplied material when absent. A registered key whose material
// differs from the supplied one is a hard error, never replaced.
func (e *Engine) resolveSSHKey(ctx context.Context, logger zerolog.Logger, publicKey string) (*sacloud.SSHPublicKey, error) {
	key, err := e.env.FindSSHKey(ctx)
	if err != nil {
		return nil, err
	}
	if key != nil {
		if publicKey != "" && key.PublicKey != publicKey {
			return nil, &SSHKeyMismatchError{KeyID: key.ID, Registered: key.PublicKey, Supplied: publicKey}
		}
		logger.Info().Stringer("id", key.ID).Msg("ssh key already registered")
		return key, nil
	}
	if publicKey == "" {
		return nil, ErrSSHKeyRequired
	}

	key, err = e.env.CreateSSHKey(ctx, publicKey)
	if err != nil {
		return nil, err
	}
	logger.Info().Stringer("id", key.ID).Msg("ssh key registered")
	return key, nil
}

func (e *Engine) ensureServerUp(ctx context.Context, logger zerolog.Logger, serverID sacloud.ServerID) error {
	server, err := e.client.GetServer(ctx, serverID)
	if err != nil {
		return err
	}
	if server.Instance == nil || server.Instance.Status != sacloud.InstanceUp {
		logger.Info().Msg("powering server on")
		if err := e.client.PowerOn(ctx, sacloud.KindServer, serverID.ID); err != nil {
			return err
		}
	}
	if err := e.client.WaitUp(ctx, sacloud.KindServer, serverID.ID); err != nil {
		return err
	}
	if err := e.client.WaitAvailable(ctx, sacloud.KindServer, serverID.ID); err != nil {
		return err
	}
	logger.Info().Msg("server up")
	return nil
}

// bootstrap runs the remote completion protocol against the router's
// global address with the firewall open, re-enabling it on every exit
// path.
func (e *Engine) bootstrap(ctx context.Context, logger zerolog.Logger, routerID sacloud.ApplianceID) error {
	router, err := e.client.GetAppliance(ctx, routerID)
	if err != nil {
		return err
	}
	host := router.GlobalIP()
	if host == "" {
		return &RouterAddressMissingError{VpcRouterID: routerID}
	}

	boot := e.newBootstrap(host)
	return e.withFirewallOpen(ctx, logger, routerID, func(ctx context.Context) error {
		if err := boot.Prepare(ctx); err != nil {
			return err
		}
		return boot.WaitForDone(ctx)
	})
}
