package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func mountUserRoutes(authed, admin chi.Router, d RouterDeps) {
	authed.Post("/user", func(w http.ResponseWriter, r *http.Request) {
		body, err := ReadDocument(w, r)
		if err != nil {
			Fail(w, http.StatusBadRequest, "invalid json")
			return
		}
		out, err := d.Users.SignIn(r.Context(), callerEmail(r), body)
		if err != nil {
			failWith(w, r, d.Log, err, mapUserError)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})

	authed.Get("/trainers-and-admins/{email}", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.Users.GetPrivileged(r.Context(), pathParam(r, "email"))
		if err != nil {
			failWith(w, r, d.Log, err, mapUserError)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})

	admin.Get("/user", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.Users.List(r.Context())
		if err != nil {
			failWith(w, r, d.Log, err)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})
}
