package http

import (
	"net/http"

	"github.com/MKhiriev/go-fleet-keeper/internal/utils"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	info := models.AppInfo{Version: h.services.AppInfoService.GetAppVersion(r.Context())}
	utils.WriteJSON(w, info, http.StatusOK)
}
