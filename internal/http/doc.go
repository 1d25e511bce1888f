// Package http provides the HTTP adapter for the digest module.
//
// Routes mount on a standard ServeMux:
//   - Convert: POST /convert renders a feed payload into WeChat digest HTML
//   - Health: GET /healthz
//   - Archive: GET /archive (metadata listing), GET /archive/{id} (full
//     record including HTML)
//
// Host applications can register the handlers on their own mux or run the
// bundled Server, which is what the `digest api` mode does.
package http
