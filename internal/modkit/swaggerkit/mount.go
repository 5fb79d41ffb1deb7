// Package swaggerkit mounts Swagger UI and the OpenAPI document
package swaggerkit

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	phttp "babyfood/internal/platform/net/http"
	"babyfood/internal/services/api/docs"
)

// DocPath is where the OpenAPI document is served
const DocPath = "/api/docs/doc.json"

// Mount serves the UI under /api/docs when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get(DocPath, serveDocJSON())
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
		httpSwagger.URL(DocPath),
	))
}
