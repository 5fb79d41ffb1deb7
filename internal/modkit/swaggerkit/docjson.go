package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"babyfood/internal/services/api/docs"
)

// SpecMutator adjusts the parsed document before it is served
type SpecMutator func(map[string]any)

var (
	mutMu    sync.Mutex
	mutators []SpecMutator

	// docReader is swapped in tests
	docReader = func() string { return docs.SwaggerInfo.ReadDoc() }
)

// Register adds a mutator applied on every document request
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mutMu.Lock()
	mutators = append(mutators, m)
	mutMu.Unlock()
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		ensureServers(spec, "/api/v1")
		ensureErrorSchema(spec)
		addDefaultResponses(spec)

		mutMu.Lock()
		ms := append([]SpecMutator(nil), mutators...)
		mutMu.Unlock()
		for _, m := range ms {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureServers lifts swagger 2 and 3.1 documents to 3.0.3, which the UI renders, and sets a base server
func ensureServers(spec map[string]any, url string) {
	if _, ok := spec["swagger"]; ok {
		delete(spec, "swagger")
		spec["openapi"] = "3.0.3"
	}
	if v, ok := spec["openapi"].(string); !ok || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

// ensureErrorSchema describes the error envelope every endpoint can answer with
func ensureErrorSchema(spec map[string]any) {
	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	str := map[string]any{"type": "string"}
	schemas["ErrorResponse"] = map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer"},
			"status":      str,
			"code":        map[string]any{"type": "integer"},
			"reason":      str,
			"error":       str,
			"field":       str,
			"request_id":  str,
		},
		"required": []any{"status_code", "status"},
	}
}

func errorResponse(status int, text, msg string) map[string]any {
	return map[string]any{
		"description": text,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": status,
					"status":      text,
					"error":       msg,
					"request_id":  "babyfood-api/Xq2b9-000001",
				},
			},
		},
	}
}

// addDefaultResponses adds 400 and 500 to every operation that does not document them
func addDefaultResponses(spec map[string]any) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	defaults := map[string]map[string]any{
		"400": errorResponse(http.StatusBadRequest, "Bad Request", "name is a required field"),
		"500": errorResponse(http.StatusInternalServerError, "Internal Server Error", "internal error"),
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			resps := child(op, "responses")
			for code, resp := range defaults {
				if _, exists := resps[code]; !exists {
					resps[code] = resp
				}
			}
		}
	}
}
