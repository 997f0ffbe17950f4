package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func mountBookingRoutes(authed chi.Router, d RouterDeps) {
	authed.Post("/bookings", func(w http.ResponseWriter, r *http.Request) {
		body, err := ReadDocument(w, r)
		if err != nil {
			Fail(w, http.StatusBadRequest, "invalid json")
			return
		}
		id, err := d.Bookings.Create(r.Context(), callerEmail(r), body)
		if err != nil {
			failWith(w, r, d.Log, err, mapBookingError)
			return
		}
		WriteJSON(w, http.StatusCreated, map[string]any{"insertedId": id})
	})

	authed.Get("/booked/{email}", func(w http.ResponseWriter, r *http.Request) {
		email := pathParam(r, "email")
		if !d.requireOwnerOrAdmin(w, r, email) {
			return
		}
		out, err := d.Bookings.ListForMember(r.Context(), email)
		if err != nil {
			failWith(w, r, d.Log, err, mapBookingError)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})

	authed.Get("/trainer/bookings/{email}", func(w http.ResponseWriter, r *http.Request) {
		email := pathParam(r, "email")
		if !d.requireOwnerOrAdmin(w, r, email) {
			return
		}
		out, err := d.Bookings.ListForTrainer(r.Context(), email)
		if err != nil {
			failWith(w, r, d.Log, err, mapBookingError, mapTrainerError)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})
}
