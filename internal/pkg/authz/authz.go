package authz

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/user"
)

const rbacModel = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj
`

// Authorizer answers whether a role holds a permission. Policies are loaded
// from user.RolePermissions so the table stays the single source.
type Authorizer struct {
	enforcer *casbin.Enforcer
}

func NewAuthorizer(policies map[user.Role][]user.Permission) (*Authorizer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("authz: invalid model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz: failed to create enforcer: %w", err)
	}

	for role, perms := range policies {
		for _, perm := range perms {
			if _, err := enforcer.AddPolicy(SubjectFromRole(role), string(perm)); err != nil {
				return nil, fmt.Errorf("authz: failed to add policy %s/%s: %w", role, perm, err)
			}
		}
	}
	return &Authorizer{enforcer: enforcer}, nil
}

func SubjectFromRole(role user.Role) string {
	slug := strings.TrimSpace(strings.ToLower(string(role)))
	if slug == "" {
		slug = "anonymous"
	}
	return "role:" + slug
}

func (a *Authorizer) Authorize(role user.Role, perm user.Permission) (bool, error) {
	return a.enforcer.Enforce(SubjectFromRole(role), string(perm))
}
