package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"bigcompany-analysis/internal/service"
)

// Handler serves a report computed once at startup. It never reloads data.
type Handler struct {
	report service.Report
}

func NewHandler(report service.Report) *Handler {
	return &Handler{report: report}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) == 0 || parts[0] != "report" || len(parts) > 2 {
		writeError(w, http.StatusNotFound, "route not found")
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if len(parts) == 1 {
		writeJSON(w, http.StatusOK, h.report)
		return
	}

	switch parts[1] {
	case "salary-violations":
		writeJSON(w, http.StatusOK, h.report.SalaryViolations)
	case "deep-employees":
		writeJSON(w, http.StatusOK, h.report.DeepEmployees)
	default:
		writeError(w, http.StatusNotFound, "route not found")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}
