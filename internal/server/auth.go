package server

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/auth"
)

// tokenLifetime is the grant lifetime reported for a verified token. The
// shared secret itself never expires; this only bounds a single grant.
const tokenLifetime = 24 * time.Hour

// requireBearer wraps next with the SDK bearer-token gate. A call either
// carries the configured token or is rejected before reaching any tool.
func (s *Server) requireBearer(next http.Handler) http.Handler {
	return auth.RequireBearerToken(s.verifyToken, nil)(next)
}

// verifyToken compares the presented token against the configured shared
// secret. On match the caller receives an unrestricted-scope grant.
func (s *Server) verifyToken(ctx context.Context, token string, _ *http.Request) (*auth.TokenInfo, error) {
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.AuthToken)) != 1 {
		return nil, auth.ErrInvalidToken
	}
	return &auth.TokenInfo{
		Scopes:     []string{"*"},
		Expiration: time.Now().Add(tokenLifetime),
	}, nil
}
