package env

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const publicIPEndpoint = "https://checkip.amazonaws.com/"

// operatorPublicIP looks up the public IPv4 address of the machine running
// the workflow. The address feeds the firewall allow rules; when it cannot
// be determined the rules degrade to deny-only and the lookup failure is
// logged rather than surfaced.
func operatorPublicIP(ctx context.Context) (string, bool) {
	reqCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, publicIPEndpoint, nil)
	if err != nil {
		return "", false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("public address lookup failed")
		return "", false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 256))
	if err != nil || resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("public address lookup failed")
		return "", false
	}
	addr := net.ParseIP(strings.TrimSpace(string(body)))
	if addr == nil || addr.To4() == nil {
		log.Warn().Str("body", strings.TrimSpace(string(body))).Msg("public address lookup returned no IPv4 address")
		return "", false
	}
	return addr.String(), true
}
