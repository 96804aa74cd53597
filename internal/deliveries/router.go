package deliveries

import (
	"github.com/go-chi/chi/v5"
)

// Router creates a chi.Router for the deliveries API.
func Router(store *Store) chi.Router {
	r := chi.NewRouter()

	r.Get("/", ListDeliveriesHandler(store))
	r.Get("/{deliveryId}", GetDeliveryHandler(store))
	r.Patch("/{deliveryId}/status", UpdateStatusHandler(store))
	r.Delete("/{deliveryId}", DeleteDeliveryHandler(store))

	return r
}
