package assets

import (
	"context"
	"path"
	"strings"

	"github.com/vk/plugkit/internal/diag"
	"github.com/vk/plugkit/internal/host"
	"github.com/vk/plugkit/internal/spec"
)

// Kind distinguishes scripts from styles.
type Kind string

const (
	KindScript Kind = "script"
	KindStyle  Kind = "style"
)

// Audience distinguishes the administrative surface from the public one.
type Audience string

const (
	AudienceAdmin  Audience = "admin"
	AudiencePublic Audience = "public"
)

// Script placement values carried in Descriptor.Extra.
const (
	PlacementHead   = "head"
	PlacementFooter = "footer"
)

// DefaultMedia is the media query used when a style registration passes "".
const DefaultMedia = "all"

// Descriptor is one accumulated asset registration. Extra carries the
// script placement or the style media query, whichever applies.
type Descriptor struct {
	Handle   string
	URI      string
	Deps     []string
	Audience Audience
	Kind     Kind
	Extra    string
}

// bucket preserves insertion order for one (audience, kind) pair. Upserts
// keep the original position of a handle.
type bucket struct {
	order []string
	items map[string]*Descriptor
}

func (b *bucket) put(d *Descriptor) {
	if _, ok := b.items[d.Handle]; !ok {
		b.order = append(b.order, d.Handle)
	}
	b.items[d.Handle] = d
}

type bucketKey struct {
	audience Audience
	kind     Kind
}

// Queue accumulates asset registrations for the whole process and drains
// them into host enqueues when the host fires the matching flush hook. One
// Queue is shared by every extension in the process.
type Queue struct {
	enqueuer host.Enqueuer
	request  host.RequestInfo
	buckets  map[bucketKey]*bucket
}

// NewQueue creates an empty Queue flushing through enqueuer, gated on the
// request predicates.
func NewQueue(enqueuer host.Enqueuer, request host.RequestInfo) *Queue {
	return &Queue{
		enqueuer: enqueuer,
		request:  request,
		buckets:  make(map[bucketKey]*bucket),
	}
}

// AddScript queues a public-surface script located at rel inside sp's root.
func (q *Queue) AddScript(sp *spec.Spec, rel string, deps []string, footer bool) {
	q.add(sp, rel, deps, AudiencePublic, KindScript, placement(footer))
}

// AddAdminScript queues an admin-surface script.
func (q *Queue) AddAdminScript(sp *spec.Spec, rel string, deps []string, footer bool) {
	q.add(sp, rel, deps, AudienceAdmin, KindScript, placement(footer))
}

// AddStyle queues a public-surface stylesheet. An empty media defaults to
// DefaultMedia.
func (q *Queue) AddStyle(sp *spec.Spec, rel string, deps []string, media string) {
	q.add(sp, rel, deps, AudiencePublic, KindStyle, mediaOrDefault(media))
}

// AddAdminStyle queues an admin-surface stylesheet.
func (q *Queue) AddAdminStyle(sp *spec.Spec, rel string, deps []string, media string) {
	q.add(sp, rel, deps, AudienceAdmin, KindStyle, mediaOrDefault(media))
}

func (q *Queue) add(sp *spec.Spec, rel string, deps []string, audience Audience, kind Kind, extra string) {
	d := &Descriptor{
		Handle:   Handle(sp.ShortName, kind, rel),
		URI:      sp.PublicURL + strings.TrimPrefix(path.Clean(rel), "/"),
		Deps:     deps,
		Audience: audience,
		Kind:     kind,
		Extra:    extra,
	}

	key := bucketKey{audience, kind}
	b, ok := q.buckets[key]
	if !ok {
		b = &bucket{items: make(map[string]*Descriptor)}
		q.buckets[key] = b
	}
	// Same logical asset collides onto the same handle: last write wins.
	b.put(d)
}

// FlushAdmin enqueues every admin-audience descriptor, styles before
// scripts, in insertion order. It is a no-op outside an administrative
// request context. De-duplication of flush calls is the host's side of the
// contract: each flush hook fires once per request.
func (q *Queue) FlushAdmin(ctx context.Context) {
	if !q.request.IsAdmin() {
		return
	}
	q.flush(ctx, AudienceAdmin)
}

// FlushPublic enqueues every public-audience descriptor, styles before
// scripts, in insertion order. It is a no-op in an administrative context.
func (q *Queue) FlushPublic(ctx context.Context) {
	if q.request.IsAdmin() {
		return
	}
	q.flush(ctx, AudiencePublic)
}

func (q *Queue) flush(ctx context.Context, audience Audience) {
	logger := diag.FromContext(ctx)
	for _, kind := range []Kind{KindStyle, KindScript} {
		b, ok := q.buckets[bucketKey{audience, kind}]
		if !ok {
			continue
		}
		for _, handle := range b.order {
			d := b.items[handle]
			// Assets are enqueued versionless; cache busting is the
			// host's concern.
			q.enqueuer.Enqueue(d.Handle, d.URI, d.Deps, "", d.Extra)
			logger.Debug("Asset enqueued.", "handle", d.Handle, "audience", audience, "kind", kind)
		}
	}
}

// Handle derives the deterministic, lower-cased handle for an asset:
// shortName, kind, and the file name without its extension, joined with
// hyphens. Repeated registrations of the same logical asset collide here.
func Handle(shortName string, kind Kind, rel string) string {
	base := path.Base(rel)
	base = strings.TrimSuffix(base, path.Ext(base))
	return strings.ToLower(shortName + "-" + string(kind) + "-" + base)
}

func placement(footer bool) string {
	if footer {
		return PlacementFooter
	}
	return PlacementHead
}

func mediaOrDefault(media string) string {
	if media == "" {
		return DefaultMedia
	}
	return media
}
