package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/asdos-web/internal/observability"
	"github.com/noah-isme/asdos-web/internal/session"
	"github.com/noah-isme/asdos-web/internal/token"
)

// Redirect targets used by the route guard.
const (
	LoginPath        = "/auth/login"
	UnauthorizedPath = "/unauthorized"
)

// Locals keys populated for requests that pass the guard.
const (
	LocalUserID  = "user_id"
	LocalRole    = "user_role"
	LocalSubject = "user_sub"
	LocalToken   = "session_token"
)

// GuardRule binds a path prefix to the role allowed under it.
type GuardRule struct {
	Prefix string
	Role   token.Role
}

// DefaultGuardRules protects every role dashboard.
func DefaultGuardRules() []GuardRule {
	return []GuardRule{
		{Prefix: "/dashboard/admin", Role: token.RoleAdmin},
		{Prefix: "/dashboard/mahasiswa", Role: token.RoleStudent},
		{Prefix: "/dashboard/dosen", Role: token.RoleLecturer},
	}
}

// DashboardFor returns the landing path of role, or "" for unknown roles.
func DashboardFor(role token.Role) string {
	for _, rule := range DefaultGuardRules() {
		if rule.Role == role {
			return rule.Prefix
		}
	}
	return ""
}

// matches compares case-insensitively, as the router resolves routes that way.
func (r GuardRule) matches(path string) bool {
	path = strings.ToLower(path)
	prefix := strings.ToLower(strings.TrimRight(r.Prefix, "/"))
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// RouteGuard redirects visitors of guarded prefixes who lack a valid session to
// the login page, and signed-in visitors with the wrong or an unknown role to
// the unauthorized page.
// It only gates navigation; the backend still authorises every forwarded call.
func RouteGuard(sessions *session.Manager, logger zerolog.Logger, rules ...GuardRule) fiber.Handler {
	if len(rules) == 0 {
		rules = DefaultGuardRules()
	}
	log := logger.With().Str("component", "route_guard").Logger()

	return func(c *fiber.Ctx) error {
		rule, ok := matchRule(rules, c.Path())
		if !ok {
			return c.Next()
		}

		decisions := observability.GuardDecisions()

		tok, err := sessions.Current(c)
		if errors.Is(err, token.ErrClaims) {
			decisions.WithLabelValues(rule.Prefix, "claims").Inc()
			log.Info().
				Str("correlation_id", GetCorrelationID(c)).
				Str("path", c.Path()).
				Str("role", string(tok.Role())).
				Err(err).
				Msg("session claims not usable")
			return c.Redirect(UnauthorizedPath, fiber.StatusFound)
		}
		if err != nil {
			outcome := "invalid"
			switch {
			case errors.Is(err, session.ErrNoToken):
				outcome = "missing"
			case errors.Is(err, session.ErrExpired):
				outcome = "expired"
			}
			decisions.WithLabelValues(rule.Prefix, outcome).Inc()
			log.Debug().
				Str("correlation_id", GetCorrelationID(c)).
				Str("path", c.Path()).
				Str("outcome", outcome).
				Err(err).
				Msg("redirecting to login")
			return c.Redirect(LoginPath, fiber.StatusFound)
		}

		if tok.Role() != rule.Role {
			decisions.WithLabelValues(rule.Prefix, "forbidden").Inc()
			log.Info().
				Str("correlation_id", GetCorrelationID(c)).
				Str("path", c.Path()).
				Str("role", string(tok.Role())).
				Str("required_role", string(rule.Role)).
				Msg("role not allowed")
			return c.Redirect(UnauthorizedPath, fiber.StatusFound)
		}

		decisions.WithLabelValues(rule.Prefix, "allowed").Inc()
		c.Locals(LocalUserID, tok.UserID())
		c.Locals(LocalRole, string(tok.Role()))
		c.Locals(LocalSubject, tok.Subject())
		c.Locals(LocalToken, tok.Raw)

		return c.Next()
	}
}

func matchRule(rules []GuardRule, path string) (GuardRule, bool) {
	for _, rule := range rules {
		if rule.matches(path) {
			return rule, true
		}
	}
	return GuardRule{}, false
}
