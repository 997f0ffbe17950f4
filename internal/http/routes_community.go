package http

import (
	"net/http"
	"strconv"

	"fitness-tracker/backend/internal/domain/community"

	"github.com/go-chi/chi/v5"
)

func mountCommunityRoutes(pub, authed, admin chi.Router, d RouterDeps) {
	pub.Post("/subscribers", func(w http.ResponseWriter, r *http.Request) {
		var in community.SubscribeInput
		if err := ReadJSON(w, r, &in); err != nil {
			Fail(w, http.StatusBadRequest, "invalid json")
			return
		}
		out, err := d.Community.Subscribe(r.Context(), in)
		if err != nil {
			failWith(w, r, d.Log, err, mapCommunityError)
			return
		}
		WriteJSON(w, http.StatusCreated, out)
	})

	admin.Get("/subscribers", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.Community.Subscribers(r.Context())
		if err != nil {
			failWith(w, r, d.Log, err)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})

	authed.Post("/review-post", func(w http.ResponseWriter, r *http.Request) {
		body, err := ReadDocument(w, r)
		if err != nil {
			Fail(w, http.StatusBadRequest, "invalid json")
			return
		}
		out, err := d.Community.PostReview(r.Context(), body)
		if err != nil {
			failWith(w, r, d.Log, err, mapCommunityError)
			return
		}
		WriteJSON(w, http.StatusCreated, out)
	})

	pub.Get("/reviews", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.Community.Reviews(r.Context())
		if err != nil {
			failWith(w, r, d.Log, err)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})

	authed.Post("/forums", func(w http.ResponseWriter, r *http.Request) {
		body, err := ReadDocument(w, r)
		if err != nil {
			Fail(w, http.StatusBadRequest, "invalid json")
			return
		}
		out, err := d.Community.PostForum(r.Context(), body)
		if err != nil {
			failWith(w, r, d.Log, err, mapCommunityError)
			return
		}
		WriteJSON(w, http.StatusCreated, out)
	})

	pub.Get("/forums", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("page"))
		limit, _ := strconv.Atoi(q.Get("limit"))

		out, err := d.Community.Forums(r.Context(), community.Page{Page: page, Limit: limit})
		if err != nil {
			failWith(w, r, d.Log, err)
			return
		}
		WriteJSON(w, http.StatusOK, out)
	})
}
