// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/shoprec/internal/logging"
	"github.com/tomtom215/shoprec/internal/models"
)

// Reload handles POST /api/v1/admin/reload
// Queues a dataset reload and returns 202 without waiting for it.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.reloader == nil {
		respondError(w, r, http.StatusServiceUnavailable, &models.APIError{
			Code:    models.ErrCodeReloadUnavailable,
			Message: "Reload service is not running",
		}, nil)
		return
	}

	resp := &models.ReloadResponse{Queued: h.reloader.TriggerReload()}
	if resp.Queued {
		resp.Message = "Reload queued"
	} else {
		resp.Message = "Reload already pending"
	}

	logging.Ctx(r.Context()).Info().Bool("queued", resp.Queued).Str("remote_addr", r.RemoteAddr).Msg("Dataset reload requested")

	respondSuccess(w, r, http.StatusAccepted, resp, start)
}
