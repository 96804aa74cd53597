package alerts

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Lexor-hub/id-transportes-back-sub000/pkg/tenancy"
)

// ListAlertsHandler handles GET /api/v1/alerts
// Query params: limit. The company scope comes from the request context.
// Company-filtered reads always hit durable storage; the in-memory cache
// is a flat global buffer and only serves as a fallback.
func ListAlertsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, ok := tenancy.ScopeFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusForbidden, "no company scope")
			return
		}

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		records, err := store.Recent(r.Context(), scope.CompanyID, limit)
		if err != nil {
			// Degraded path: serve the global cache rather than failing
			// the read outright.
			cached := store.CachedRecent()
			filtered := make([]alertResponse, 0, len(cached))
			for _, rec := range cached {
				if rec.CompanyID == scope.CompanyID {
					filtered = append(filtered, recordToResponse(rec))
				}
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"alerts":   filtered,
				"degraded": true,
			})
			return
		}

		alerts := make([]alertResponse, len(records))
		for i, rec := range records {
			alerts[i] = recordToResponse(rec)
		}

		writeJSON(w, http.StatusOK, map[string]any{"alerts": alerts})
	}
}

// alertResponse is the API representation of an alert.
type alertResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CompanyID   int64  `json:"companyId"`
	DeliveryID  string `json:"deliveryId,omitempty"`
	DriverID    int64  `json:"driverId,omitempty"`
	DriverName  string `json:"driverName,omitempty"`
	ActorID     int64  `json:"actorId,omitempty"`
	ActorName   string `json:"actorName,omitempty"`
	ActorRole   string `json:"actorRole,omitempty"`
	OccurredAt  string `json:"occurredAt"`
}

func recordToResponse(rec AlertRecord) alertResponse {
	return alertResponse{
		ID:          rec.ID,
		Type:        rec.Type,
		Severity:    rec.Severity,
		Title:       rec.Title,
		Description: rec.Description,
		CompanyID:   rec.CompanyID,
		DeliveryID:  rec.DeliveryID,
		DriverID:    rec.DriverID,
		DriverName:  rec.DriverName,
		ActorID:     rec.ActorID,
		ActorName:   rec.ActorName,
		ActorRole:   rec.ActorRole,
		OccurredAt:  rec.OccurredAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
