package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sacenv/sacenv/pkg/sacloud"
)

const (
	stablePollInterval = 5 * time.Second
	stableWaitTimeout  = 30 * time.Minute
)

// Clean tears the environment down in reverse dependency order: router
// before switch, server before disk, each delete confirmed absent before
// the next one is issued. The registered SSH key is left in place so the
// credential survives across environments.
func (e *Engine) Clean(ctx context.Context) error {
	logger := log.With().
		Str("run_id", uuid.NewString()).
		Str("workflow", "clean").
		Str("prefix", e.env.Prefix()).
		Logger()

	router, err := e.env.FindVpcRouter(ctx)
	if err != nil {
		return err
	}
	server, err := e.env.FindServer(ctx)
	if err != nil {
		return err
	}

	// Nothing is destroyed while any powered resource is in a
	// transitional state; an ambiguous status is re-observed, not acted
	// upon.
	if router != nil {
		router, err = e.waitRouterStable(ctx, logger, router.ID)
		if err != nil {
			return err
		}
	}
	if server != nil {
		server, err = e.waitServerStable(ctx, logger, server.ID)
		if err != nil {
			return err
		}
	}

	if router != nil {
		if err := e.deleteRouter(ctx, logger, router); err != nil {
			return err
		}
	} else {
		logger.Info().Msg("vpc router already absent")
	}

	sw, err := e.env.FindSwitch(ctx)
	if err != nil {
		return err
	}
	if sw != nil {
		logger.Info().Stringer("id", sw.ID).Msg("deleting switch")
		if err := e.client.Delete(ctx, sacloud.KindSwitch, sw.ID.ID, nil); err != nil {
			return err
		}
		if err := e.client.WaitDeleted(ctx, sacloud.KindSwitch, sw.ID.ID); err != nil {
			return err
		}
		logger.Info().Msg("switch deleted")
	} else {
		logger.Info().Msg("switch already absent")
	}

	if server != nil {
		if err := e.deleteServer(ctx, logger, server); err != nil {
			return err
		}
	} else {
		logger.Info().Msg("server already absent")
	}

	disk, err := e.env.FindDisk(ctx)
	if err != nil {
		return err
	}
	if disk != nil {
		logger.Info().Stringer("id", disk.ID).Msg("deleting disk")
		if err := e.client.Delete(ctx, sacloud.KindDisk, disk.ID.ID, nil); err != nil {
			return err
		}
		if err := e.client.WaitDeleted(ctx, sacloud.KindDisk, disk.ID.ID); err != nil {
			return err
		}
		logger.Info().Msg("disk deleted")
	} else {
		logger.Info().Msg("disk already absent")
	}

	key, err := e.env.FindSSHKey(ctx)
	if err != nil {
		return err
	}
	if key != nil {
		logger.Info().Stringer("id", key.ID).Msg("ssh key kept, never deleted by teardown")
	}
	return nil
}

func (e *Engine) deleteRouter(ctx context.Context, logger zerolog.Logger, router *sacloud.Appliance) error {
	if router.Instance != nil && router.Instance.Status == sacloud.InstanceUp {
		logger.Info().Stringer("id", router.ID).Msg("powering vpc router off")
		if err := e.client.PowerOff(ctx, sacloud.KindAppliance, router.ID.ID); err != nil {
			return err
		}
		if err := e.client.WaitDown(ctx, sacloud.KindAppliance, router.ID.ID); err != nil {
			return err
		}
	}
	logger.Info().Stringer("id", router.ID).Msg("deleting vpc router")
	if err := e.client.Delete(ctx, sacloud.KindAppliance, router.ID.ID, nil); err != nil {
		return err
	}
	if err := e.client.WaitDeleted(ctx, sacloud.KindAppliance, router.ID.ID); err != nil {
		return err
	}
	logger.Info().Msg("vpc router deleted")
	return nil
}

func (e *Engine) deleteServer(ctx context.Context, logger zerolog.Logger, server *sacloud.Server) error {
	if server.Instance != nil && server.Instance.Status == sacloud.InstanceUp {
		logger.Info().Stringer("id", server.ID).Msg("powering server off")
		if err := e.client.PowerOff(ctx, sacloud.KindServer, server.ID.ID); err != nil {
			return err
		}
		if err := e.client.WaitDown(ctx, sacloud.KindServer, server.ID.ID); err != nil {
			return err
		}
	}
	logger.Info().Stringer("id", server.ID).Msg("deleting server")
	if err := e.client.Delete(ctx, sacloud.KindServer, server.ID.ID, nil); err != nil {
		return err
	}
	if err := e.client.WaitDeleted(ctx, sacloud.KindServer, server.ID.ID); err != nil {
		return err
	}
	logger.Info().Msg("server deleted")
	return nil
}

func (e *Engine) waitRouterStable(ctx context.Context, logger zerolog.Logger, id sacloud.ApplianceID) (*sacloud.Appliance, error) {
	deadline := time.Now().Add(stableWaitTimeout)
	for {
		router, err := e.client.GetAppliance(ctx, id)
		if err != nil {
			return nil, err
		}
		if router.Instance == nil || router.Instance.Status.Stable() {
			return router, nil
		}
		logger.Info().Str("status", string(router.Instance.Status)).Msg("vpc router in transitional state, waiting")
		if err := sleepUntil(ctx, deadline, sacloud.KindAppliance, string(router.Instance.Status)); err != nil {
			return nil, err
		}
	}
}

func (e *Engine) waitServerStable(ctx context.Context, logger zerolog.Logger, id sacloud.ServerID) (*sacloud.Server, error) {
	deadline := time.Now().Add(stableWaitTimeout)
	for {
		server, err := e.client.GetServer(ctx, id)
		if err != nil {
			return nil, err
		}
		if server.Instance == nil || server.Instance.Status.Stable() {
			return server, nil
		}
		logger.Info().Str("status", string(server.Instance.Status)).Msg("server in transitional state, waiting")
		if err := sleepUntil(ctx, deadline, sacloud.KindServer, string(server.Instance.Status)); err != nil {
			return nil, err
		}
	}
}

func sleepUntil(ctx context.Context, deadline time.Time, kind sacloud.ResourceKind, status string) error {
	if time.Now().After(deadline) {
		return &sacloud.WaitError{
			Path:     kind.Path(),
			Reason:   sacloud.WaitTimeout,
			Status:   status,
			Resource: nil,
		}
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(stablePollInterval):
	}
	return nil
}
