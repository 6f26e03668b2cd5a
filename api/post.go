package api

import (
	"net/http"
	"time"

	"github.com/KiloProjects/blognova"
	"github.com/KiloProjects/blognova/internal/util"
	"github.com/KiloProjects/blognova/sudoapi"
)

func (s *API) getPost(w http.ResponseWriter, r *http.Request) {
	returnData(w, util.Post(r))
}

type postCreateForm struct {
	Title string `schema:"title"`
	Text  string `schema:"text"`

	PubDate   string `schema:"pub_date"`
	Published bool   `schema:"published"`

	CategoryID *int    `schema:"category_id"`
	LocationID *int    `schema:"location_id"`
	ImageURL   *string `schema:"image_url"`
}

func (s *API) createPost(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	var form postCreateForm
	if err := decoder.Decode(&form, r.Form); err != nil {
		errorData(w, err, http.StatusBadRequest)
		return
	}
	args := sudoapi.PostCreateArgs{
		Title: form.Title,
		Text:  form.Text,

		Published: form.Published,

		CategoryID: form.CategoryID,
		LocationID: form.LocationID,
		ImageURL:   form.ImageURL,
	}
	if form.PubDate != "" {
		t, err := time.Parse(time.RFC3339, form.PubDate)
		if err != nil {
			errorData(w, "Invalid publication date, expected RFC 3339", http.StatusBadRequest)
			return
		}
		args.PubDate = t
	}
	id, err := s.base.CreatePost(r.Context(), util.User(r), args)
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, id)
}

type postUpdateForm struct {
	Title *string `schema:"title"`
	Text  *string `schema:"text"`

	PubDate   *string `schema:"pub_date"`
	Published *bool   `schema:"published"`

	CategoryID *int    `schema:"category_id"`
	LocationID *int    `schema:"location_id"`
	ImageURL   *string `schema:"image_url"`
}

func (s *API) updatePost(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	var form postUpdateForm
	if err := decoder.Decode(&form, r.Form); err != nil {
		errorData(w, err, http.StatusBadRequest)
		return
	}
	upd := blognova.PostUpdate{
		Title: form.Title,
		Text:  form.Text,

		Published: form.Published,
	}
	if form.PubDate != nil {
		t, err := time.Parse(time.RFC3339, *form.PubDate)
		if err != nil {
			errorData(w, "Invalid publication date, expected RFC 3339", http.StatusBadRequest)
			return
		}
		upd.PubDate = &t
	}
	// a submitted zero clears the column, absence leaves it untouched
	if form.CategoryID != nil {
		upd.SetCategory = true
		if *form.CategoryID > 0 {
			upd.CategoryID = form.CategoryID
		}
	}
	if form.LocationID != nil {
		upd.SetLocation = true
		if *form.LocationID > 0 {
			upd.LocationID = form.LocationID
		}
	}
	if form.ImageURL != nil {
		upd.SetImage = true
		if *form.ImageURL != "" {
			upd.ImageURL = form.ImageURL
		}
	}
	if err := s.base.UpdatePost(r.Context(), util.Post(r), util.User(r), upd); err != nil {
		statusError(w, err)
		return
	}
	returnData(w, "Updated post")
}

func (s *API) deletePost(w http.ResponseWriter, r *http.Request) {
	if err := s.base.DeletePost(r.Context(), util.Post(r), util.User(r)); err != nil {
		statusError(w, err)
		return
	}
	returnData(w, "Deleted post")
}
