package deliveries

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Lexor-hub/id-transportes-back-sub000/pkg/authz"
)

// ListDeliveriesHandler handles GET /api/v1/deliveries
// Query params: status, clientId, driverId, startDate, endDate (YYYY-MM-DD).
func ListDeliveriesHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := authz.ActorFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "no authenticated actor")
			return
		}

		f, err := filterFromQuery(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		records, err := store.List(r.Context(), actor, f)
		if err != nil {
			writeRuleError(w, err)
			return
		}

		out := make([]deliveryResponse, len(records))
		for i, d := range records {
			out[i] = toResponse(d)
		}
		writeJSON(w, http.StatusOK, map[string]any{"deliveries": out})
	}
}

// GetDeliveryHandler handles GET /api/v1/deliveries/{deliveryId}
func GetDeliveryHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := authz.ActorFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "no authenticated actor")
			return
		}

		id, err := deliveryID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		d, err := store.Get(r.Context(), actor, id)
		if err != nil {
			writeRuleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(*d))
	}
}

// UpdateStatusHandler handles PATCH /api/v1/deliveries/{deliveryId}/status
// Body: {"status": "IN_TRANSIT"}
func UpdateStatusHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := authz.ActorFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "no authenticated actor")
			return
		}

		id, err := deliveryID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		var body struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
			writeError(w, http.StatusBadRequest, "body must carry a status field")
			return
		}

		d, err := store.UpdateStatus(r.Context(), actor, id, body.Status)
		if err != nil {
			writeRuleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(*d))
	}
}

// DeleteDeliveryHandler handles DELETE /api/v1/deliveries/{deliveryId}
func DeleteDeliveryHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := authz.ActorFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "no authenticated actor")
			return
		}

		id, err := deliveryID(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		result, err := store.Delete(r.Context(), actor, id)
		if err != nil {
			writeRuleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"deleted":       true,
			"alertRecorded": result.AlertRecorded,
		})
	}
}

func filterFromQuery(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()
	f := ListFilter{
		Status:    q.Get("status"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	}

	if v := q.Get("clientId"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, errors.New("clientId must be numeric")
		}
		f.ClientID = n
	}
	if v := q.Get("driverId"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, errors.New("driverId must be numeric")
		}
		f.DriverID = n
	}

	for _, d := range []string{f.StartDate, f.EndDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return f, errors.New("dates must use the YYYY-MM-DD format")
		}
	}

	return f, nil
}

func deliveryID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "deliveryId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("delivery id must be a positive integer")
	}
	return id, nil
}

// deliveryResponse is the API representation of a delivery.
type deliveryResponse struct {
	ID                   int64  `json:"id"`
	CompanyID            int64  `json:"companyId"`
	DriverID             *int64 `json:"driverId,omitempty"`
	CreatedByUserID      int64  `json:"createdByUserId"`
	ClientID             *int64 `json:"clientId,omitempty"`
	Status               string `json:"status"`
	NFNumber             string `json:"nfNumber,omitempty"`
	DeliveryDateExpected string `json:"deliveryDateExpected,omitempty"`
	CreatedAt            string `json:"createdAt"`
}

func toResponse(d Delivery) deliveryResponse {
	resp := deliveryResponse{
		ID:              d.ID,
		CompanyID:       d.CompanyID,
		DriverID:        d.DriverID,
		CreatedByUserID: d.CreatedByUserID,
		ClientID:        d.ClientID,
		Status:          d.Status,
		NFNumber:        d.NFNumber,
		CreatedAt:       d.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if d.DeliveryDateExpected != nil {
		resp.DeliveryDateExpected = d.DeliveryDateExpected.Format("2006-01-02")
	}
	return resp
}

// writeRuleError maps a store error to its HTTP status: rule outcomes get
// their specific code, infrastructure faults become a 500.
func writeRuleError(w http.ResponseWriter, err error) {
	var rule *RuleError
	if errors.As(err, &rule) {
		status := http.StatusInternalServerError
		switch rule.Code {
		case CodeNotFound:
			status = http.StatusNotFound
		case CodeForbidden:
			status = http.StatusForbidden
		case CodePreconditionFailed:
			status = http.StatusPreconditionFailed
		}
		writeJSON(w, status, map[string]string{
			"error": rule.Message,
			"code":  rule.Code,
		})
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
