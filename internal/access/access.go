package access

import (
	"context"
	"sort"
	"strings"

	"github.com/pointtaken/timesheet/internal"
)

// Role is the effective permission level of a caller for one
// organization. It is derived from the email on every request and is
// never persisted.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
	RoleNone   Role = "none"
)

type ctxKey string

const contextRoleKey ctxKey = "access_role"

func ContextWithRole(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, contextRoleKey, role)
}

func RoleFromContext(ctx context.Context) (Role, bool) {
	role, ok := ctx.Value(contextRoleKey).(Role)
	return role, ok
}

// Resolver decides who may see and change what. The precedence order is
// fixed: admin allow-list, staff domain, per-organization access email,
// legacy customer domains, then nothing.
type Resolver struct {
	adminEmails    map[string]struct{}
	staffDomain    string
	legacyDomains  map[string][]string
	viewerCanWrite bool
}

func NewResolver(cfg internal.AccessConfig) *Resolver {
	admins := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, email := range cfg.AdminEmails {
		admins[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}
	return &Resolver{
		adminEmails:    admins,
		staffDomain:    strings.ToLower(cfg.StaffDomain),
		legacyDomains:  cfg.LegacyDomains,
		viewerCanWrite: cfg.ViewerCanWrite,
	}
}

// ResolveRole returns the caller's role for one organization.
// accessEmail is the organization's configured viewer address, empty if
// none is set. Legacy domain matching covers subdomains, the rule the
// customer onboarding flow has always promised, but is anchored so only
// the domain itself or a subdomain of it qualifies.
func (r *Resolver) ResolveRole(email, organizationID, accessEmail string) Role {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return RoleNone
	}

	if _, ok := r.adminEmails[email]; ok {
		return RoleAdmin
	}

	if strings.HasSuffix(email, "@"+r.staffDomain) {
		return RoleAdmin
	}

	if accessEmail != "" && strings.EqualFold(email, strings.TrimSpace(accessEmail)) {
		return RoleViewer
	}

	for _, domain := range r.legacyDomains[organizationID] {
		if matchesDomain(email, domain) {
			return RoleViewer
		}
	}

	return RoleNone
}

// matchesDomain reports whether the email's domain is the given domain
// or a subdomain of it. The match is anchored at the "@" (or a dot) so
// a lookalike domain that merely ends with the same letters never
// passes.
func matchesDomain(email, domain string) bool {
	domain = strings.ToLower(domain)
	return strings.HasSuffix(email, "@"+domain) || strings.HasSuffix(email, "."+domain)
}

// ResolveGlobalRole returns the role a caller holds independently of any
// organization. Only staff and allow-listed admins hold one.
func (r *Resolver) ResolveGlobalRole(email string) Role {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return RoleNone
	}
	if _, ok := r.adminEmails[email]; ok {
		return RoleAdmin
	}
	if strings.HasSuffix(email, "@"+r.staffDomain) {
		return RoleAdmin
	}
	return RoleNone
}

// LegacyOrganizationsFor lists the legacy organizations whose customer
// domains match the email.
func (r *Resolver) LegacyOrganizationsFor(email string) []string {
	email = strings.ToLower(strings.TrimSpace(email))
	var orgs []string
	for org, domains := range r.legacyDomains {
		for _, domain := range domains {
			if matchesDomain(email, domain) {
				orgs = append(orgs, org)
				break
			}
		}
	}
	sort.Strings(orgs)
	return orgs
}

// DenialReason spells out what would have granted access, shown to
// callers that resolve to no role for the organization.
func (r *Resolver) DenialReason(organizationID string) string {
	reason := "access requires a " + r.staffDomain + " account or the organization's registered access email"
	if domains := r.legacyDomains[organizationID]; len(domains) > 0 {
		reason += " or an address under " + strings.Join(domains, ", ")
	}
	return reason
}

// CanWrite reports whether the role may create or delete entries. The
// viewer_can_write toggle exists because customers were briefly allowed
// to log their own hours.
func (r *Resolver) CanWrite(role Role) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleViewer:
		return r.viewerCanWrite
	default:
		return false
	}
}
