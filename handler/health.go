package handler

import "net/http"

// Version is reported by the healthcheck and published as an expvar.
const Version = "1.0.0"

// @Summary Healthcheck
// @Description Report service status and whether the database is reachable.
// @Tags health
// @Produce json
// @Success 200 {object} envelope
// @Failure 503 {object} envelope
// @Router /healthcheck [get]
func (h *Handler) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	status, database, code := "available", "reachable", http.StatusOK
	if err := h.service.Healthcheck(); err != nil {
		h.logError(r, err)
		status, database, code = "unavailable", "unreachable", http.StatusServiceUnavailable
	}
	health := envelope{
		"status":   status,
		"database": database,
		"system_info": map[string]string{
			"environment": h.config.Server.Env,
			"version":     Version,
		},
	}
	err := h.encodeJSON(w, code, health, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
