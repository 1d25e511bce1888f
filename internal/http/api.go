package http

import (
	"net/http"

	digestarchive "github.com/goliatone/go-digest/archive"
	archivesvc "github.com/goliatone/go-digest/internal/archive"
	"github.com/goliatone/go-digest/internal/convert"
	"github.com/goliatone/go-digest/internal/logging"
	"github.com/goliatone/go-digest/pkg/interfaces"
)

// APIOptions configures the digest HTTP API.
type APIOptions struct {
	Converter      *convert.Service
	Archive        *archivesvc.Service
	URLs           *ArchiveURLs
	Logger         interfaces.Logger
	ArchiveEnabled func() bool
}

// API exposes the digest services over HTTP.
type API struct {
	converter      *convert.Service
	archive        *archivesvc.Service
	urls           *ArchiveURLs
	logger         interfaces.Logger
	archiveEnabled func() bool
}

type convertResponse struct {
	HTML   string                 `json:"html"`
	Digest *digestarchive.Summary `json:"digest,omitempty"`
}

// NewAPI constructs the HTTP API around the supplied services.
func NewAPI(opts APIOptions) *API {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &API{
		converter:      opts.Converter,
		archive:        opts.Archive,
		urls:           opts.URLs,
		logger:         logger,
		archiveEnabled: opts.ArchiveEnabled,
	}
}

// Register mounts the digest routes under the supplied base path.
func (api *API) Register(mux *http.ServeMux, base string) {
	if api == nil || mux == nil {
		return
	}
	mux.HandleFunc("POST "+joinPath(base, "convert"), api.handleConvert)
	mux.HandleFunc("GET "+joinPath(base, "healthz"), api.handleHealthz)
	mux.HandleFunc("GET "+joinPath(base, "archive"), api.handleArchiveList)
	mux.HandleFunc("GET "+joinPath(base, "archive")+"/{id}", api.handleArchiveGet)
}

// Handler returns a ready-to-serve handler with every route registered.
func (api *API) Handler(base string) http.Handler {
	mux := http.NewServeMux()
	api.Register(mux, base)
	return mux
}

func (api *API) handleConvert(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.converter == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	body, err := readBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "request body required"})
		return
	}

	result, err := api.converter.ConvertRequest(r.Context(), body, interfaces.RenderOptions{})
	if err != nil {
		api.logger.Error("convert request failed", "error", err)
		writeError(w, err)
		return
	}

	response := convertResponse{HTML: string(result.HTML)}
	if result.Digest != nil {
		summary := result.Digest.Summarize()
		summary.URL = api.urls.DigestURL(summary.ID)
		response.Digest = &summary
	}
	writeJSON(w, http.StatusOK, response)
}

func (api *API) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (api *API) handleArchiveList(w http.ResponseWriter, r *http.Request) {
	if !api.archiveAvailable() {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable", Message: "archive disabled"})
		return
	}

	limit := parseIntQuery(r.URL.Query().Get("limit"), 0)
	offset := parseIntQuery(r.URL.Query().Get("offset"), 0)

	summaries, err := api.archive.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	for i := range summaries {
		summaries[i].URL = api.urls.DigestURL(summaries[i].ID)
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (api *API) handleArchiveGet(w http.ResponseWriter, r *http.Request) {
	if !api.archiveAvailable() {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable", Message: "archive disabled"})
		return
	}

	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}

	record, err := api.archive.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) archiveAvailable() bool {
	if api == nil || api.archive == nil || !api.archive.Enabled() {
		return false
	}
	if api.archiveEnabled != nil && !api.archiveEnabled() {
		return false
	}
	return true
}
