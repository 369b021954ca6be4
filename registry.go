package madara

import (
	"net/url"
	"sort"
	"strings"
)

// Registry holds the selector contexts of known sites, keyed by id.
type Registry struct {
	sites map[string]Context
}

// NewRegistry creates a Registry holding sites.
// Later sites replace earlier ones with the same id.
func NewRegistry(sites ...Context) *Registry {
	r := &Registry{sites: make(map[string]Context)}
	for _, s := range sites {
		r.Register(s)
	}
	return r
}

// Register adds a site. A site with the same id is replaced.
func (r *Registry) Register(site Context) {
	r.sites[site.ID] = site
}

// Get returns the site with the given id.
// Returns ENOTFOUND if no such site is registered.
func (r *Registry) Get(id string) (Context, error) {
	site, ok := r.sites[id]
	if !ok {
		return Context{}, Errorf(ENOTFOUND, "site %q not found", id)
	}
	return site, nil
}

// ForURL returns the site whose base URL host matches rawURL.
// Returns ENOTFOUND if no registered site serves that host.
func (r *Registry) ForURL(rawURL string) (Context, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return Context{}, Errorf(EINVALID, "invalid URL %q", rawURL)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, id := range r.IDs() {
		site := r.sites[id]
		b, err := url.Parse(site.BaseURL)
		if err != nil {
			continue
		}
		if strings.TrimPrefix(strings.ToLower(b.Hostname()), "www.") == host {
			return site, nil
		}
	}
	return Context{}, Errorf(ENOTFOUND, "no site registered for %s", u.Host)
}

// IDs returns the registered site ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.sites))
	for id := range r.sites {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered sites.
func (r *Registry) Len() int {
	return len(r.sites)
}

// BuiltinSites returns the site profiles shipped with the package.
func BuiltinSites() []Context {
	mangatx, err := DefaultContext("mangatx", "MangaTX", "https://mangatx.com")
	if err != nil {
		panic(err)
	}
	return []Context{mangatx}
}
