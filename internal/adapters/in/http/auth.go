package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/generated/servers"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

var (
	ErrTokenIsMissing = errors.New("bearer token is required")
	ErrTokenIsInvalid = errors.New("bearer token is invalid")
)

// Principal is the authenticated caller. CourierID is set for couriers only.
type Principal struct {
	Actor     assignment.Actor
	CourierID kernel.UUID
}

func (p Principal) IsCourier() bool { return p.Actor == assignment.ActorCourier }

// Claims carries the caller's role. For couriers the subject is the courier id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens. With an empty secret every request is
// treated as a dispatcher, which is only meant for local development.
type Authenticator struct {
	secret []byte
	now    func() time.Time
}

func NewAuthenticator(secret string, now func() time.Time) *Authenticator {
	if now == nil {
		now = time.Now
	}
	return &Authenticator{secret: []byte(secret), now: now}
}

func (a *Authenticator) Enabled() bool { return len(a.secret) > 0 }

// Issue signs a token for role. subject is the courier id for couriers.
func (a *Authenticator) Issue(role, subject string, ttl time.Duration) (string, error) {
	now := a.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Parse validates the token and resolves the principal it names.
func (a *Authenticator) Parse(raw string) (Principal, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrTokenIsInvalid, err)
	}

	actor, err := assignment.ParseActor(claims.Role)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrTokenIsInvalid, err)
	}
	if actor != assignment.ActorCourier {
		return Principal{Actor: actor}, nil
	}

	courierID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: courier subject: %w", ErrTokenIsInvalid, err)
	}
	return Principal{Actor: actor, CourierID: courierID}, nil
}

// Middleware authenticates every request of the group it is attached to. The token is
// read from the Authorization header, or from the access_token query parameter for
// websocket clients that cannot set headers.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if !a.Enabled() {
				ctx.Set(principalKey, Principal{Actor: assignment.ActorDispatcher})
				return next(ctx)
			}

			raw := bearerToken(ctx.Request())
			if raw == "" {
				raw = ctx.QueryParam("access_token")
			}
			if raw == "" {
				return unauthorized(ctx, ErrTokenIsMissing)
			}

			principal, err := a.Parse(raw)
			if err != nil {
				return unauthorized(ctx, err)
			}
			ctx.Set(principalKey, principal)
			return next(ctx)
		}
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func unauthorized(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusUnauthorized, servers.Error{
		Code:    http.StatusUnauthorized,
		Message: err.Error(),
	})
}

func principalFrom(ctx echo.Context) (Principal, bool) {
	p, ok := ctx.Get(principalKey).(Principal)
	return p, ok
}
