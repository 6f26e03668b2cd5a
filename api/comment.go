package api

import (
	"net/http"

	"github.com/KiloProjects/blognova/internal/util"
)

func (s *API) getComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.base.PostComments(r.Context(), util.Post(r).ID)
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, comments)
}

func (s *API) createComment(w http.ResponseWriter, r *http.Request) {
	id, err := s.base.CreateComment(r.Context(), util.User(r), util.Post(r), r.FormValue("text"))
	if err != nil {
		statusError(w, err)
		return
	}
	returnData(w, id)
}

func (s *API) updateComment(w http.ResponseWriter, r *http.Request) {
	if err := s.base.UpdateComment(r.Context(), util.Comment(r), util.User(r), r.FormValue("text")); err != nil {
		statusError(w, err)
		return
	}
	returnData(w, "Updated comment")
}

func (s *API) deleteComment(w http.ResponseWriter, r *http.Request) {
	if err := s.base.DeleteComment(r.Context(), util.Comment(r), util.User(r)); err != nil {
		statusError(w, err)
		return
	}
	returnData(w, "Deleted comment")
}
