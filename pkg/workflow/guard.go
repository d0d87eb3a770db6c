package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/sacenv/sacenv/pkg/sacloud"
)

const recloseTimeout = 10 * time.Minute

// withFirewallOpen disables the router firewall, runs fn, and re-enables
// the firewall on every exit path, panics included. The reclose runs on a
// context detached from ctx so a cancelled run still closes the firewall;
// a reclose failure leaves the environment exposed and is both logged and
// joined into the returned error.
func (e *Engine) withFirewallOpen(ctx context.Context, logger zerolog.Logger, routerID sacloud.ApplianceID, fn func(ctx context.Context) error) (err error) {
	if applyErr := e.env.ApplyRouterNetworkConfig(ctx, routerID, false); applyErr != nil {
		return applyErr
	}
	logger.Warn().Msg("firewall disabled for bootstrap")

	defer func() {
		recloseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recloseTimeout)
		defer cancel()

		if recloseErr := e.env.ApplyRouterNetworkConfig(recloseCtx, routerID, true); recloseErr != nil {
			logger.Error().
				Err(recloseErr).
				Bool("integrity_at_risk", true).
				Stringer("vpc_router", routerID).
				Msg("failed to re-enable firewall, environment is exposed")
			err = errors.Join(err, recloseErr)
			return
		}
		logger.Info().Msg("firewall re-enabled")
	}()

	return fn(ctx)
}
