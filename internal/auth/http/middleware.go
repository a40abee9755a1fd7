package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/redeemly/vouchers/internal/auth/domain"
	authService "github.com/redeemly/vouchers/internal/auth/service"
	authUseCase "github.com/redeemly/vouchers/internal/auth/usecase"
	apperrors "github.com/redeemly/vouchers/internal/errors"
	"github.com/redeemly/vouchers/internal/httputil"
)

// AuthenticationMiddleware authenticates requests via Bearer token in the
// Authorization header.
//
// The middleware hashes the presented token, resolves it through
// TokenUseCase.Authenticate, and stores the authenticated client in the
// request context for downstream handlers (see GetClient).
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Invalid/expired/revoked token → 401 Unauthorized
//   - Inactive client → 403 Forbidden
func AuthenticationMiddleware(
	tokenUseCase authUseCase.TokenUseCase,
	tokenService authService.TokenService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		plainToken := authHeader[len(bearerPrefix):]
		if plainToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		tokenHash := tokenService.HashToken(plainToken)

		client, err := tokenUseCase.Authenticate(c.Request.Context(), tokenHash)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithClient(c.Request.Context(), client)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("client_id", client.ID.String()),
			slog.String("client_name", client.Name))

		c.Next()
	}
}

// AuthorizationMiddleware enforces capability-based authorization for
// authenticated clients. MUST be used after AuthenticationMiddleware.
//
// Error handling:
//   - No client in context → 401 Unauthorized
//   - Client lacks the capability → 403 Forbidden
func AuthorizationMiddleware(
	capability authDomain.Capability,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := GetClient(c.Request.Context())
		if !ok || client == nil {
			logger.Debug("authorization failed: no authenticated client in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !client.IsAllowed(capability) {
			logger.Debug("authorization failed: missing capability",
				slog.String("client_id", client.ID.String()),
				slog.String("client_name", client.Name),
				slog.String("capability", string(capability)))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		logger.Debug("authorization successful",
			slog.String("client_id", client.ID.String()),
			slog.String("capability", string(capability)))

		c.Next()
	}
}
