package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"fitness-tracker/backend/internal/domain/trainer"

	"github.com/go-chi/chi/v5"
)

func mountTrainerRoutes(pub, authed, admin chi.Router, d RouterDeps) {
	pub.Get("/trainer", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.Trainers.ListApproved(r.Context())
		if err != nil {
			failWith(w, r, d.Log, err)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})

	pub.Get("/trainer/{id}", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.Trainers.Get(r.Context(), pathParam(r, "id"))
		if err != nil {
			failWith(w, r, d.Log, err, mapTrainerError)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})

	authed.Get("/my-trainer-application", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.Trainers.ListMine(r.Context(), callerEmail(r))
		if err != nil {
			failWith(w, r, d.Log, err, mapTrainerError)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})

	authed.Post("/trainer", func(w http.ResponseWriter, r *http.Request) {
		body, err := ReadDocument(w, r)
		if err != nil {
			Fail(w, http.StatusBadRequest, "invalid json")
			return
		}
		out, err := d.Trainers.Create(r.Context(), callerEmail(r), body)
		if err != nil {
			failWith(w, r, d.Log, err, mapTrainerError)
			return
		}
		WriteJSON(w, http.StatusCreated, out)
	})

	authed.Patch("/trainer/{email}", func(w http.ResponseWriter, r *http.Request) {
		var in trainer.AvailabilityInput
		if err := ReadJSON(w, r, &in); err != nil {
			Fail(w, http.StatusBadRequest, "invalid json")
			return
		}
		out, err := d.Trainers.UpdateAvailability(r.Context(), callerEmail(r), pathParam(r, "email"), in)
		if err != nil {
			failWith(w, r, d.Log, err, mapTrainerError)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})

	authed.Delete("/slots/{email}", func(w http.ResponseWriter, r *http.Request) {
		var in trainer.DeleteSlotInput
		if err := ReadJSON(w, r, &in); err != nil && !errors.Is(err, io.EOF) {
			Fail(w, http.StatusBadRequest, "invalid json")
			return
		}
		if strings.TrimSpace(in.Slot) == "" {
			in.Slot = r.URL.Query().Get("slot")
		}
		out, err := d.Trainers.DeleteSlot(r.Context(), callerEmail(r), pathParam(r, "email"), in.Slot)
		if err != nil {
			failWith(w, r, d.Log, err, mapTrainerError)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})

	admin.Get("/pending-trainer", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.Trainers.ListPending(r.Context())
		if err != nil {
			failWith(w, r, d.Log, err)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})

	admin.Get("/pending/{id}", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.Trainers.Get(r.Context(), pathParam(r, "id"))
		if err != nil {
			failWith(w, r, d.Log, err, mapTrainerError)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})

	admin.Patch("/trainer/approve/{id}", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.Trainers.Approve(r.Context(), pathParam(r, "id"))
		if err != nil {
			failWith(w, r, d.Log, err, mapTrainerError)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})

	admin.Patch("/trainer/reject/{id}", func(w http.ResponseWriter, r *http.Request) {
		var in trainer.RejectInput
		if err := ReadJSON(w, r, &in); err != nil {
			Fail(w, http.StatusBadRequest, "invalid json")
			return
		}
		out, err := d.Trainers.Reject(r.Context(), pathParam(r, "id"), in)
		if err != nil {
			failWith(w, r, d.Log, err, mapTrainerError)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})

	admin.Delete("/trainer/{id}", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.Trainers.Delete(r.Context(), pathParam(r, "id"))
		if err != nil {
			failWith(w, r, d.Log, err, mapTrainerError)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})
}
