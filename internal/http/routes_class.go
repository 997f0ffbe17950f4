package http

import (
	"net/http"

	"fitness-tracker/backend/internal/domain/media"

	"github.com/go-chi/chi/v5"
)

func mountClassRoutes(pub, authed, admin chi.Router, d RouterDeps) {
	pub.Get("/class", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.Classes.Search(r.Context(), r.URL.Query().Get("search"))
		if err != nil {
			failWith(w, r, d.Log, err, mapClassError)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})

	authed.Get("/trainer-classes/{trainerId}", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.Classes.ForTrainer(r.Context(), pathParam(r, "trainerId"))
		if err != nil {
			failWith(w, r, d.Log, err, mapTrainerError, mapClassError)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})

	admin.Post("/addClass", func(w http.ResponseWriter, r *http.Request) {
		body, err := ReadDocument(w, r)
		if err != nil {
			Fail(w, http.StatusBadRequest, "invalid json")
			return
		}
		out, err := d.Classes.Create(r.Context(), body)
		if err != nil {
			failWith(w, r, d.Log, err, mapClassError)
			return
		}
		WriteJSON(w, http.StatusCreated, out)
	})

	admin.Post("/uploads/class-image", func(w http.ResponseWriter, r *http.Request) {
		if d.Media == nil {
			Fail(w, http.StatusNotImplemented, media.ErrNotConfigured.Error())
			return
		}
		var in media.SignedUploadInput
		if err := ReadJSON(w, r, &in); err != nil {
			Fail(w, http.StatusBadRequest, "invalid json")
			return
		}
		out, err := d.Media.ClassImageUpload(r.Context(), in)
		if err != nil {
			failWith(w, r, d.Log, err, mapMediaError)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})
}
