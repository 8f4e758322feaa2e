package rstdirective

import (
	"sort"
	"strings"

	"github.com/grove-platform/docparse/rstinline"
)

// Registry holds domain -> name -> handler maps for both directives and
// roles (spec.md §4.F). It is immutable once built; a Builder collects
// registrations and produces one with Build.
type Registry struct {
	directives map[string]map[string]DirectiveSpec
	roles      map[string]map[string]rstinline.RoleFunc

	// defaultDomains is the resolution order tried, in turn, for an
	// unqualified name: e.g. ["mongodb", "std", ""].
	defaultDomains []string
}

// Builder accumulates directive/role registrations before Build freezes
// them into a Registry. The zero value is ready to use.
type Builder struct {
	directives map[string]map[string]DirectiveSpec
	roles      map[string]map[string]rstinline.RoleFunc
}

// RegisterDirective adds spec under domain ("" for the default,
// unqualified domain) and name.
func (b *Builder) RegisterDirective(domain, name string, spec DirectiveSpec) *Builder {
	if b.directives == nil {
		b.directives = make(map[string]map[string]DirectiveSpec)
	}
	if b.directives[domain] == nil {
		b.directives[domain] = make(map[string]DirectiveSpec)
	}
	b.directives[domain][name] = spec
	return b
}

// RegisterRole adds fn under domain and name.
func (b *Builder) RegisterRole(domain, name string, fn rstinline.RoleFunc) *Builder {
	if b.roles == nil {
		b.roles = make(map[string]map[string]rstinline.RoleFunc)
	}
	if b.roles[domain] == nil {
		b.roles[domain] = make(map[string]rstinline.RoleFunc)
	}
	b.roles[domain][name] = fn
	return b
}

// Build freezes the accumulated registrations into a Registry that
// resolves unqualified names through domains, in order.
func (b *Builder) Build(domains ...string) *Registry {
	if len(domains) == 0 {
		domains = []string{""}
	}
	r := &Registry{
		directives:     make(map[string]map[string]DirectiveSpec, len(b.directives)),
		roles:          make(map[string]map[string]rstinline.RoleFunc, len(b.roles)),
		defaultDomains: domains,
	}
	for domain, m := range b.directives {
		cp := make(map[string]DirectiveSpec, len(m))
		for k, v := range m {
			cp[k] = v
		}
		r.directives[domain] = cp
	}
	for domain, m := range b.roles {
		cp := make(map[string]rstinline.RoleFunc, len(m))
		for k, v := range m {
			cp[k] = v
		}
		r.roles[domain] = cp
	}
	return r
}

// NewDefaultRegistry builds the Registry rst.DefaultOptions seeds a
// parse with: the generic docutils-shaped directive/role set plus the
// MongoDB-flavored docs-tooling directives, all registered into the
// default ("") domain, resolved through ["mongodb", "std", ""] per
// spec.md §4.F's example resolution order.
func NewDefaultRegistry() *Registry {
	var b Builder
	RegisterDefaultDirectives(&b, "")
	RegisterDefaultRoles(&b, "")
	return b.Build("mongodb", "std", "")
}

// splitQualified splits a "domain:name" lookup key into its parts; a
// name with no colon is left unqualified. A key with nothing before the
// colon (":name") is malformed and yields an empty bare name, which no
// lookup finds.
func splitQualified(name string) (domain, bare string, qualified bool) {
	if strings.HasPrefix(name, ":") {
		return "", "", true
	}
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i], name[i+1:], true
	}
	return "", name, false
}

// LookupDirective resolves name to a DirectiveSpec, trying the
// qualified domain first if name is "domain:bare", otherwise walking
// the registry's default domain resolution order.
func (r *Registry) LookupDirective(name string) (DirectiveSpec, bool) {
	if domain, bare, ok := splitQualified(name); ok {
		spec, found := r.directives[domain][bare]
		return spec, found
	}
	for _, domain := range r.defaultDomains {
		if spec, found := r.directives[domain][name]; found {
			return spec, true
		}
	}
	return DirectiveSpec{}, false
}

// LookupRole resolves name the same way LookupDirective does, for the
// inline tokenizer's Context.LookupRole hook.
func (r *Registry) LookupRole(name string) (rstinline.RoleFunc, bool) {
	if domain, bare, ok := splitQualified(name); ok {
		fn, found := r.roles[domain][bare]
		return fn, found
	}
	for _, domain := range r.defaultDomains {
		if fn, found := r.roles[domain][name]; found {
			return fn, true
		}
	}
	return nil, false
}

// DirectiveNames returns every registered directive name, qualified as
// "domain:name" for non-default domains and bare for domain "", sorted
// and deduplicated, for a CLI's "list what's registered" reporting.
func (r *Registry) DirectiveNames() []string {
	return qualifiedNames(r.directives)
}

// RoleNames is DirectiveNames for the role table.
func (r *Registry) RoleNames() []string {
	return qualifiedNames(r.roles)
}

func qualifiedNames[T any](byDomain map[string]map[string]T) []string {
	seen := make(map[string]bool)
	var out []string
	for domain, names := range byDomain {
		for name := range names {
			key := name
			if domain != "" {
				key = domain + ":" + name
			}
			if !seen[key] {
				seen[key] = true
				out = append(out, key)
			}
		}
	}
	sort.Strings(out)
	return out
}
