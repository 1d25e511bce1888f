package http

import (
	"fmt"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"
	"github.com/google/uuid"
)

// ArchiveURLsOptions configures the go-urlkit backed archive URL builder.
type ArchiveURLsOptions struct {
	Manager     *urlkit.RouteManager
	Group       string
	DigestRoute string
	ListRoute   string
	IDParam     string
}

// ArchiveURLs builds canonical URLs for archive resources using a go-urlkit
// RouteManager. Lookups are best effort: a missing group or route yields an
// empty URL rather than an error, so listings degrade to plain metadata.
type ArchiveURLs struct {
	manager *urlkit.RouteManager

	group       string
	digestRoute string
	listRoute   string
	idParam     string

	groupOnce sync.Once
	cached    *urlkit.Group
}

// NewArchiveURLs constructs an archive URL builder backed by go-urlkit.
func NewArchiveURLs(opts ArchiveURLsOptions) *ArchiveURLs {
	if opts.Group == "" {
		opts.Group = "api"
	}
	if opts.DigestRoute == "" {
		opts.DigestRoute = "digest"
	}
	if opts.ListRoute == "" {
		opts.ListRoute = "archive"
	}
	if opts.IDParam == "" {
		opts.IDParam = "id"
	}

	return &ArchiveURLs{
		manager:     opts.Manager,
		group:       strings.TrimSpace(opts.Group),
		digestRoute: strings.TrimSpace(opts.DigestRoute),
		listRoute:   strings.TrimSpace(opts.ListRoute),
		idParam:     opts.IDParam,
	}
}

// DigestURL resolves the canonical URL of one archived digest.
func (u *ArchiveURLs) DigestURL(id uuid.UUID) string {
	if u == nil || id == uuid.Nil {
		return ""
	}
	group, err := u.resolveGroup()
	if err != nil || group == nil {
		return ""
	}
	builder, err := safeBuilder(group, u.digestRoute)
	if err != nil || builder == nil {
		return ""
	}
	url, err := builder.WithParam(u.idParam, id.String()).Build()
	if err != nil {
		return ""
	}
	return url
}

// ListURL resolves the canonical URL of the archive listing.
func (u *ArchiveURLs) ListURL() string {
	if u == nil {
		return ""
	}
	group, err := u.resolveGroup()
	if err != nil || group == nil {
		return ""
	}
	builder, err := safeBuilder(group, u.listRoute)
	if err != nil || builder == nil {
		return ""
	}
	url, err := builder.Build()
	if err != nil {
		return ""
	}
	return url
}

func (u *ArchiveURLs) resolveGroup() (*urlkit.Group, error) {
	if u.manager == nil {
		return nil, fmt.Errorf("http: route manager not configured")
	}
	var err error
	u.groupOnce.Do(func() {
		u.cached, err = lookupGroup(u.manager, u.group)
	})
	return u.cached, err
}

// go-urlkit panics on unknown groups and routes, so lookups run behind a
// recover the same way the menu resolver shields itself.
func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("http: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("http: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			builder = nil
			err = fmt.Errorf("http: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}
