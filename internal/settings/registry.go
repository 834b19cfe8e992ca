// Package settings implements the deferred settings registry: section and
// field declarations accumulate during an extension's init and are wired
// into the host settings subsystem once, when the host runs its
// settings-registration phase.
package settings

import (
	"context"
	"io"

	"github.com/vk/plugkit/internal/diag"
	"github.com/vk/plugkit/internal/host"
	"github.com/vk/plugkit/internal/spec"
)

// Section is one declared settings section. Description is optional; a
// section with a description gets a header-render callback on the host side.
type Section struct {
	ID          string
	Title       string
	Description string
}

// Field is one declared settings field, bound to a section.
type Field struct {
	ID        string
	SectionID string
	Title     string
	Render    func(w io.Writer)
}

// Registry accumulates section and field declarations for one extension's
// generated settings page. Declarations upsert by slug: the last
// registration for an id wins, the first registration fixes its position.
type Registry struct {
	sp      *spec.Spec
	backend host.SettingsBackend

	sectionOrder []string
	sections     map[string]*Section
	fieldOrder   []string
	fields       map[string]*Field

	pageRegistered bool
}

// New creates an empty Registry for the extension described by sp.
func New(sp *spec.Spec, backend host.SettingsBackend) *Registry {
	return &Registry{
		sp:       sp,
		backend:  backend,
		sections: make(map[string]*Section),
		fields:   make(map[string]*Field),
	}
}

// AddSection declares a settings section. The id is slugified before use.
func (r *Registry) AddSection(id, title, description string) {
	id = spec.Slugify(id)
	if _, ok := r.sections[id]; !ok {
		r.sectionOrder = append(r.sectionOrder, id)
	}
	r.sections[id] = &Section{ID: id, Title: title, Description: description}
}

// AddField declares a settings field under sectionID. Both ids are
// slugified before use.
func (r *Registry) AddField(sectionID, fieldID, title string, render func(w io.Writer)) {
	fieldID = spec.Slugify(fieldID)
	if _, ok := r.fields[fieldID]; !ok {
		r.fieldOrder = append(r.fieldOrder, fieldID)
	}
	r.fields[fieldID] = &Field{
		ID:        fieldID,
		SectionID: spec.Slugify(sectionID),
		Title:     title,
		Render:    render,
	}
}

// RegisterOptionsPage registers the extension's single admin settings page
// with the host, at most once per process. Later calls are no-ops.
func (r *Registry) RegisterOptionsPage(ctx context.Context) {
	if r.pageRegistered {
		diag.FromContext(ctx).Debug("Options page already registered.", "page", r.sp.SettingsPageID)
		return
	}
	r.pageRegistered = true
	r.backend.AddOptionsPage(r.sp.SettingsPageID, r.sp.ShortName, r.ShowOptionsPage)
}

// RegisterOptions wires the accumulated sections and fields into the host
// settings subsystem: the storage group first, then sections in declaration
// order, then each section's fields in their declaration order.
func (r *Registry) RegisterOptions(ctx context.Context) {
	logger := diag.FromContext(ctx)
	pageID := r.sp.SettingsPageID
	r.backend.RegisterGroup(pageID)

	for _, sectionID := range r.sectionOrder {
		section := r.sections[sectionID]

		// Only described sections render a header.
		var header func(io.Writer)
		if section.Description != "" {
			desc := section.Description
			header = func(w io.Writer) {
				io.WriteString(w, "<p>"+desc+"</p>")
			}
		}
		r.backend.RegisterSection(section.ID, section.Title, header, pageID)

		for _, fieldID := range r.fieldOrder {
			field := r.fields[fieldID]
			if field.SectionID != section.ID {
				continue
			}
			r.backend.RegisterField(field.ID, field.Title, field.Render, pageID, section.ID)
		}
	}
	logger.Debug("Settings registered.", "page", pageID, "sections", len(r.sectionOrder), "fields", len(r.fieldOrder))
}

// Sections returns the declared sections in declaration order.
func (r *Registry) Sections() []*Section {
	out := make([]*Section, 0, len(r.sectionOrder))
	for _, id := range r.sectionOrder {
		out = append(out, r.sections[id])
	}
	return out
}

// Fields returns the declared fields in declaration order.
func (r *Registry) Fields() []*Field {
	out := make([]*Field, 0, len(r.fieldOrder))
	for _, id := range r.fieldOrder {
		out = append(out, r.fields[id])
	}
	return out
}
