package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/blog/internal/blog/service"
	"github.com/aussiebroadwan/blog/pkg/blogsdk"
	"github.com/aussiebroadwan/blog/pkg/httpx"
	"github.com/aussiebroadwan/blog/pkg/slogx"
)

const (
	msgForbiddenEdit   = "You are not authorized to edit this post"
	msgForbiddenDelete = "You are not authorized to delete this post"
	msgLegacyNotFound  = "No Post matches the given query."
)

// PostsHandler serves the posts resource.
type PostsHandler struct {
	PostService *service.PostService

	// LegacySaveErrors turns unexpected mutation failures into 400 responses
	// carrying the error text.
	LegacySaveErrors bool
}

// HandleList godoc
//
//	@Summary		List posts
//	@Description	Returns every post, newest first.
//	@Tags			Posts
//	@Produce		json
//	@Success		200	{array}		blogsdk.Post
//	@Failure		401	{object}	blogsdk.ErrorResponse	"A presented token is invalid"
//	@Router			/posts/ [get].
func (h *PostsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPosts(posts))
}

// HandleCreate godoc
//
//	@Summary		Create a post
//	@Description	Creates a post authored by the caller. Any author in the body is ignored.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		blogsdk.PostInput		true	"Post fields"
//	@Success		201		{object}	blogsdk.Post
//	@Failure		400		{object}	blogsdk.ErrorResponse	"Invalid fields"
//	@Failure		401		{object}	blogsdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/posts/ [post].
func (h *PostsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	fields := decodePostFields(w, r)
	post, err := h.PostService.Create(r.Context(), fields, callerFrom(r))
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toPost(post))
}

// HandleRetrieve godoc
//
//	@Summary		Get a post
//	@Tags			Posts
//	@Produce		json
//	@Param			id	path		int	true	"Post id"
//	@Success		200	{object}	blogsdk.Post
//	@Failure		404	{object}	blogsdk.ErrorResponse	"Not found."
//	@Router			/posts/{id}/ [get].
func (h *PostsHandler) HandleRetrieve(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		blogsdk.ErrNotFound.WriteError(w)
		return
	}

	post, err := h.PostService.Retrieve(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPost(post))
}

// HandleUpdate godoc
//
//	@Summary		Replace a post
//	@Description	Full update: title and content are required. Only the author may update.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Post id"
//	@Param			request	body		blogsdk.PostInput		true	"Post fields"
//	@Success		200		{object}	blogsdk.Post
//	@Failure		400		{object}	blogsdk.ErrorResponse	"Invalid fields"
//	@Failure		401		{object}	blogsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	blogsdk.ErrorResponse	"You are not authorized to edit this post"
//	@Failure		404		{object}	blogsdk.ErrorResponse	"Not found."
//	@Router			/posts/{id}/ [put].
func (h *PostsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// HandlePartialUpdate godoc
//
//	@Summary		Update a post
//	@Description	Partial update: only the fields present are changed. "imgUrl": null removes the image.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Post id"
//	@Param			request	body		blogsdk.PostInput		true	"Post fields"
//	@Success		200		{object}	blogsdk.Post
//	@Failure		400		{object}	blogsdk.ErrorResponse	"Invalid fields"
//	@Failure		401		{object}	blogsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	blogsdk.ErrorResponse	"You are not authorized to edit this post"
//	@Failure		404		{object}	blogsdk.ErrorResponse	"Not found."
//	@Router			/posts/{id}/ [patch].
func (h *PostsHandler) HandlePartialUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *PostsHandler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	id, ok := postID(r)
	if !ok {
		blogsdk.ErrNotFound.WriteError(w)
		return
	}

	fields := decodePostFields(w, r)
	post, err := h.PostService.Update(r.Context(), id, fields, partial, callerFrom(r))
	if err != nil {
		h.writeError(w, r, err, msgForbiddenEdit)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPost(post))
}

// HandleDelete godoc
//
//	@Summary		Delete a post
//	@Description	Only the author may delete.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Param			id	path	int	true	"Post id"
//	@Success		204
//	@Failure		401	{object}	blogsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	blogsdk.ErrorResponse	"You are not authorized to delete this post"
//	@Failure		404	{object}	blogsdk.ErrorResponse	"Not found."
//	@Router			/posts/{id}/ [delete].
func (h *PostsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		blogsdk.ErrNotFound.WriteError(w)
		return
	}

	if err := h.PostService.Delete(r.Context(), id, callerFrom(r)); err != nil {
		h.writeError(w, r, err, msgForbiddenDelete)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError handles the post specific cases before deferring to
// writeServiceError.
func (h *PostsHandler) writeError(w http.ResponseWriter, r *http.Request, err error, forbidden string) {
	var badJSON *decodeError
	switch {
	case errors.As(err, &badJSON):
		writeBadJSON(w, badJSON.err)
	case errors.Is(err, service.ErrForbidden):
		blogsdk.NewAPIError(http.StatusForbidden, blogsdk.CodeForbidden, forbidden).WriteError(w)
	case h.LegacySaveErrors && errors.Is(err, service.ErrPostNotFound):
		// Only mutations get here; retrieval keeps its 404.
		blogsdk.NewAPIError(http.StatusBadRequest, blogsdk.CodeSaveFailed, msgLegacyNotFound).WriteError(w)
	case isServiceError(err):
		writeServiceError(w, r, err)
	case h.LegacySaveErrors:
		slogx.FromContext(r.Context()).Error("post save failed", "err", err)
		blogsdk.NewAPIError(http.StatusBadRequest, blogsdk.CodeSaveFailed, err.Error()).WriteError(w)
	default:
		writeServiceError(w, r, err)
	}
}

// isServiceError reports whether err belongs to the service taxonomy.
func isServiceError(err error) bool {
	if _, ok := asValidation(err); ok {
		return true
	}
	for _, target := range []error{
		service.ErrUnauthenticated,
		service.ErrPostNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func postID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

type decodeError struct{ err error }

func (e *decodeError) Error() string { return e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

// decodePostFields reads a post body keeping track of which fields were
// sent. Read-only fields such as author are ignored. A body that is not a
// JSON object sets Malformed; field type errors go in Invalid. Both are
// reported by the service after the author check.
func decodePostFields(w http.ResponseWriter, r *http.Request) service.PostFields {
	var raw map[string]json.RawMessage
	if err := httpx.DecodeJSON(w, r, &raw); err != nil {
		return service.PostFields{Malformed: &decodeError{err}}
	}

	var fields service.PostFields
	invalid := map[string][]string{}

	str := func(name string, dst **string, nullable bool) bool {
		v, ok := raw[name]
		if !ok {
			return false
		}
		if string(v) == "null" {
			if !nullable {
				invalid[name] = []string{"This field may not be null."}
			}
			return true
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			invalid[name] = []string{"Not a valid string."}
			return true
		}
		*dst = &s
		return true
	}

	str("title", &fields.Title, false)
	str("content", &fields.Content, false)
	fields.ImgURLSet = str("imgUrl", &fields.ImgURL, true)

	if len(invalid) > 0 {
		fields.Invalid = invalid
	}
	return fields
}
