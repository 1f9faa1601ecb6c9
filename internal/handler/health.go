package handler

import "net/http"

// HandleHealth is a liveness probe. No auth, no dependencies.
//
// HTTP: GET /healthz → 200 {"status":"ok"}
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
