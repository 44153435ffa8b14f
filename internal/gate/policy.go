package gate

import (
	"bufio"
	_ "embed"
	"fmt"
	"net/http"
	"strings"

	"travelnest_backend/platform/httpkit"
	"travelnest_backend/platform/logger"
	"travelnest_backend/platform/session"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gin-gonic/gin"
)

//go:embed rbac_model.conf
var rbacModel string

//go:embed policy.csv
var rbacPolicy string

// Policy answers whether a role may call an API route.
type Policy struct {
	enforcer *casbin.Enforcer
	log      *logger.Logger
}

// NewPolicy loads the embedded model and policy.
func NewPolicy(log *logger.Logger) (*Policy, error) {
	return NewPolicyFromStrings(rbacModel, rbacPolicy, log)
}

// NewPolicyFromStrings builds a policy from a casbin model and CSV lines
// ("p, role, path, method" or "g, child, parent").
func NewPolicyFromStrings(modelText, policyText string, log *logger.Logger) (*Policy, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("load rbac model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}

	scanner := bufio.NewScanner(strings.NewReader(policyText))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		switch {
		case fields[0] == "p" && len(fields) == 4:
			_, err = e.AddPolicy(fields[1], fields[2], fields[3])
		case fields[0] == "g" && len(fields) == 3:
			_, err = e.AddGroupingPolicy(fields[1], fields[2])
		default:
			err = fmt.Errorf("malformed rule %q", text)
		}
		if err != nil {
			return nil, fmt.Errorf("policy line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &Policy{enforcer: e, log: log}, nil
}

// Allowed reports whether role may call method on path.
func (p *Policy) Allowed(role, path, method string) (bool, error) {
	if role == "" {
		role = session.RoleGuest
	}
	return p.enforcer.Enforce(role, path, method)
}

// Middleware enforces the policy on the API group. A caller without a
// session gets 401 when signing in would help, otherwise both anonymous and
// signed-in callers get 403.
func (p *Policy) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := httpkit.GetClaims(c)
		role := session.RoleGuest
		if claims != nil {
			role = claims.Role
		}
		path, method := c.Request.URL.Path, c.Request.Method

		ok, err := p.Allowed(role, path, method)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, httpkit.ErrorResponse{Message: httpkit.MsgInternal})
			return
		}
		if ok {
			c.Next()
			return
		}

		if claims == nil {
			if travelerOK, _ := p.Allowed(session.RoleTraveler, path, method); travelerOK {
				c.AbortWithStatusJSON(http.StatusUnauthorized, httpkit.ErrorResponse{Message: httpkit.MsgUnauthorized})
				return
			}
		}
		if p.log != nil {
			p.log.WithContext(c.Request.Context()).Warn("policy denied", "role", role, "method", method, "path", path)
		}
		c.AbortWithStatusJSON(http.StatusForbidden, httpkit.ErrorResponse{Message: httpkit.MsgUnauthorized})
	}
}
