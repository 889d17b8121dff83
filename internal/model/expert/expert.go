package expert

// Template captures the persona attributes used to seed an expert prompt.
type Template struct {
	Key         string `json:"key" yaml:"key"`
	Name        string `json:"name" yaml:"name"`
	Expertise   string `json:"expertise" yaml:"expertise"`
	Perspective string `json:"perspective" yaml:"perspective"`
	Background  string `json:"background" yaml:"background"`
}

// Store exposes expert template retrieval for the panel builder and HTTP handlers.
type Store interface {
	Domains() []string
	Set(domain string) ([]Template, bool)
	Find(domain, key string) (Template, bool)
	All() map[string][]Template
}

// MemoryStore implements Store over static in-memory domain tables.
type MemoryStore struct {
	domains []string
	sets    map[string][]Template
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied domain sets.
// Domain order follows the order of the domains slice.
func NewMemoryStore(domains []string, sets map[string][]Template) *MemoryStore {
	copied := make(map[string][]Template, len(sets))
	for domain, templates := range sets {
		copied[domain] = append([]Template(nil), templates...)
	}
	return &MemoryStore{
		domains: append([]string(nil), domains...),
		sets:    copied,
	}
}

// Domains returns the available domain names.
func (s *MemoryStore) Domains() []string {
	return append([]string(nil), s.domains...)
}

// Set returns all expert templates for a domain.
func (s *MemoryStore) Set(domain string) ([]Template, bool) {
	templates, ok := s.sets[domain]
	if !ok {
		return nil, false
	}
	return append([]Template(nil), templates...), true
}

// All returns every domain table.
func (s *MemoryStore) All() map[string][]Template {
	out := make(map[string][]Template, len(s.sets))
	for domain, templates := range s.sets {
		out[domain] = append([]Template(nil), templates...)
	}
	return out
}

// Find looks up a single expert within a domain by key.
func (s *MemoryStore) Find(domain, key string) (Template, bool) {
	templates, ok := s.sets[domain]
	if !ok {
		return Template{}, false
	}
	for _, t := range templates {
		if t.Key == key {
			return t, true
		}
	}
	return Template{}, false
}
