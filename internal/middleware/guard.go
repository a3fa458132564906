package middleware

import (
	"context"
	"engineer_connect_backend/internal/model"
	"engineer_connect_backend/internal/service"
	"engineer_connect_backend/internal/util"
	"engineer_connect_backend/pkg/logger"
	"engineer_connect_backend/pkg/monitoring"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type IdentityStore interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

type ProblemStore interface {
	FindByID(ctx context.Context, id uint) (*model.Problem, error)
}

// ProblemScope restricts a route to callers who own the problem named by Param.
type ProblemScope struct {
	Param string
}

// Rule is the declarative access rule of a route. Empty Roles admits any
// authenticated identity. Scope is checked only after the role is admitted.
type Rule struct {
	Roles []model.UserRole
	Scope *ProblemScope
}

func AnyOf(roles ...model.UserRole) []model.UserRole { return roles }

var Authenticated = Rule{}

func (r Rule) admits(role model.UserRole) bool {
	if len(r.Roles) == 0 {
		return true
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Request is what the guard needs from an incoming call.
type Request struct {
	Authorization string
	Param         func(name string) string
}

// Decision is either Authorized with the resolved identity (and problem for
// scoped rules) or Denied with the failing kind.
type Decision struct {
	Identity *model.User
	Problem  *model.Problem
	Denial   *util.AppError
}

func (d Decision) Authorized() bool { return d.Denial == nil }

func denied(err *util.AppError) Decision { return Decision{Denial: err} }

type Guard struct {
	tokens    *util.TokenService
	users     IdentityStore
	problems  ProblemStore
	ownership service.OwnershipResolver
}

func NewGuard(tokens *util.TokenService, users IdentityStore, problems ProblemStore, ownership service.OwnershipResolver) *Guard {
	return &Guard{tokens: tokens, users: users, problems: problems, ownership: ownership}
}

// Evaluate runs the whole check for one request. Each step stops at the first
// failure, so later store reads never happen for a denied request.
func (g *Guard) Evaluate(ctx context.Context, rule Rule, req Request) Decision {
	token, ok := bearerToken(req.Authorization)
	if !ok {
		return denied(util.ErrNoCredential)
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		logger.Log.Warn("Token verification failed", zap.Error(err))
		return denied(util.ErrInvalidCredential)
	}

	identity, err := g.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return denied(util.ErrIdentityGone)
	}
	if err != nil {
		return denied(util.WrapError(util.KindStoreUnavailable, "load identity", err))
	}

	if !rule.admits(identity.Role) {
		return denied(util.ErrRoleNotPermitted)
	}

	decision := Decision{Identity: identity.Public()}
	if rule.Scope == nil {
		return decision
	}

	id := util.MustParseUint(req.Param(rule.Scope.Param))
	if id == 0 {
		return denied(util.NotFoundError("Problem not found"))
	}
	problem, err := g.problems.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return denied(util.NotFoundError("Problem not found"))
	}
	if err != nil {
		return denied(util.WrapError(util.KindStoreUnavailable, "load problem", err))
	}
	if !g.ownership.OwnsProblem(identity, problem) {
		return denied(util.ErrOwnershipDenied)
	}

	decision.Problem = problem
	return decision
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

const scopedProblemKey = "scopedProblem"

// Enforce adapts rule to gin: denials are answered here, authorized requests
// continue with the identity (and scoped problem) attached to the context.
func (g *Guard) Enforce(rule Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := g.Evaluate(c.Request.Context(), rule, Request{
			Authorization: c.GetHeader("Authorization"),
			Param:         c.Param,
		})

		if !decision.Authorized() {
			monitoring.AuthDecisions.WithLabelValues(string(decision.Denial.Kind)).Inc()
			logger.Log.Warn("Request denied",
				zap.String("kind", string(decision.Denial.Kind)),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
			)
			util.Abort(c, decision.Denial)
			return
		}

		monitoring.AuthDecisions.WithLabelValues("authorized").Inc()
		util.SetCurrentUser(c, decision.Identity)
		if decision.Problem != nil {
			c.Set(scopedProblemKey, decision.Problem)
		}
		c.Next()
	}
}

// ScopedProblem returns the problem loaded by a ProblemScope rule.
func ScopedProblem(c *gin.Context) *model.Problem {
	v, ok := c.Get(scopedProblemKey)
	if !ok {
		return nil
	}
	problem, _ := v.(*model.Problem)
	return problem
}
