package inmemoryhost

import (
	"io"
	"sync"
)

// storedSection is one host-side section registration for a page.
type storedSection struct {
	ID     string
	Title  string
	Render func(io.Writer)
}

// storedField is one host-side field registration.
type storedField struct {
	ID        string
	SectionID string
	Title     string
	Render    func(io.Writer)
}

// storedPage is one registered admin options page.
type storedPage struct {
	Title string
	Show  func(io.Writer)
}

// SettingsStore is the in-memory settings subsystem: it records group,
// section, field, and page registrations and can render a page's sections
// in registration order.
type SettingsStore struct {
	mu       sync.Mutex
	groups   []string
	sections map[string][]storedSection
	fields   map[string][]storedField
	pages    map[string]storedPage
}

// NewSettingsStore creates an empty SettingsStore.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{
		sections: make(map[string][]storedSection),
		fields:   make(map[string][]storedField),
		pages:    make(map[string]storedPage),
	}
}

// RegisterGroup implements host.SettingsBackend.
func (s *SettingsStore) RegisterGroup(pageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = append(s.groups, pageID)
}

// RegisterSection implements host.SettingsBackend.
func (s *SettingsStore) RegisterSection(id, title string, render func(io.Writer), pageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections[pageID] = append(s.sections[pageID], storedSection{ID: id, Title: title, Render: render})
}

// RegisterField implements host.SettingsBackend.
func (s *SettingsStore) RegisterField(id, title string, render func(io.Writer), pageID, sectionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[pageID] = append(s.fields[pageID], storedField{ID: id, SectionID: sectionID, Title: title, Render: render})
}

// AddOptionsPage implements host.SettingsBackend.
func (s *SettingsStore) AddOptionsPage(pageID, title string, show func(io.Writer)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[pageID] = storedPage{Title: title, Show: show}
}

// RenderSections implements host.SettingsBackend: sections in registration
// order, each followed by its fields in registration order.
func (s *SettingsStore) RenderSections(pageID string, w io.Writer) {
	s.mu.Lock()
	sections := s.sections[pageID]
	fields := s.fields[pageID]
	s.mu.Unlock()

	for _, section := range sections {
		io.WriteString(w, "<h2>"+section.Title+"</h2>")
		if section.Render != nil {
			section.Render(w)
		}
		io.WriteString(w, "<table class=\"form-table\">")
		for _, field := range fields {
			if field.SectionID != section.ID {
				continue
			}
			io.WriteString(w, "<tr><th>"+field.Title+"</th><td>")
			if field.Render != nil {
				field.Render(w)
			}
			io.WriteString(w, "</td></tr>")
		}
		io.WriteString(w, "</table>")
	}
}

// Groups returns the registered group ids in order.
func (s *SettingsStore) Groups() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.groups))
	copy(out, s.groups)
	return out
}

// SectionIDs returns the registered section ids for a page, in order.
func (s *SettingsStore) SectionIDs(pageID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, section := range s.sections[pageID] {
		out = append(out, section.ID)
	}
	return out
}

// FieldIDs returns the registered field ids for a page, in order.
func (s *SettingsStore) FieldIDs(pageID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, field := range s.fields[pageID] {
		out = append(out, field.ID)
	}
	return out
}

// Page returns the registered options page for pageID.
func (s *SettingsStore) Page(pageID string) (title string, show func(io.Writer), ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[pageID]
	return p.Title, p.Show, ok
}

// PageCount returns the number of registered options pages.
func (s *SettingsStore) PageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}
