package controllers

import (
	"errors"
	"net/http"

	"pubboard/app/middleware"
	"pubboard/app/models"
	"pubboard/app/schemas"
	"pubboard/app/services"
	"pubboard/global"
)

type PublicationController struct {
	posts        *services.PublicationService
	users        *services.UserService
	createSchema schemas.Schema
	updateSchema schemas.Schema
}

func NewPublicationController(posts *services.PublicationService, users *services.UserService) *PublicationController {
	return &PublicationController{
		posts:        posts,
		users:        users,
		createSchema: schemas.PublicationCreate(),
		updateSchema: schemas.PublicationUpdate(),
	}
}

// Create POST /api/v1/publications
func (c *PublicationController) Create(w http.ResponseWriter, r *http.Request) {
	form, err := decodeForm(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	data, verr := c.createSchema.Verify(form, false)
	if verr != nil {
		writeJSON(w, http.StatusBadRequest, verr)
		return
	}

	post, err := c.posts.Create(middleware.CurrentUser(r.Context()), data)
	if err != nil {
		global.Logger.Error().Err(err).Msg("publication create failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeData(w, http.StatusCreated, schemas.DumpPublication(post))
}

// List GET /api/v1/publications
func (c *PublicationController) List(w http.ResponseWriter, r *http.Request) {
	posts, err := c.posts.ListAll()
	if err != nil {
		global.Logger.Error().Err(err).Msg("publication listing failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeData(w, http.StatusOK, schemas.DumpPublications(posts))
}

// Get GET /api/v1/publications/{id}
func (c *PublicationController) Get(w http.ResponseWriter, r *http.Request) {
	post, ok := c.fetch(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, schemas.DumpPublication(post))
}

// Patch PATCH /api/v1/publications/{id}
func (c *PublicationController) Patch(w http.ResponseWriter, r *http.Request) {
	c.update(w, r, c.createSchema, true)
}

// Put PUT /api/v1/publications/{id} — title, description, priority and
// status must all be present.
func (c *PublicationController) Put(w http.ResponseWriter, r *http.Request) {
	c.update(w, r, c.updateSchema, false)
}

func (c *PublicationController) update(w http.ResponseWriter, r *http.Request, schema schemas.Schema, partial bool) {
	post, ok := c.fetch(w, r)
	if !ok {
		return
	}
	if !c.posts.CanMutate(middleware.CurrentUser(r.Context()), post) {
		writeMessage(w, http.StatusForbidden, "Unauthorized for update this post")
		return
	}

	form, err := decodeForm(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	data, verr := schema.Verify(form, partial)
	if verr != nil {
		writeJSON(w, http.StatusBadRequest, verr)
		return
	}

	updated, err := c.posts.Update(post, data)
	if err != nil {
		global.Logger.Error().Err(err).Uint("post", post.ID).Msg("publication update failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeData(w, http.StatusOK, schemas.DumpPublication(updated))
}

// Delete DELETE /api/v1/publications/{id}
func (c *PublicationController) Delete(w http.ResponseWriter, r *http.Request) {
	post, ok := c.fetch(w, r)
	if !ok {
		return
	}
	if !c.posts.CanMutate(middleware.CurrentUser(r.Context()), post) {
		writeMessage(w, http.StatusForbidden, "Unauthorized for delete post")
		return
	}
	if err := c.posts.Delete(post); err != nil {
		global.Logger.Error().Err(err).Uint("post", post.ID).Msg("publication delete failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListByUser GET /api/v1/users/{id}/publications
func (c *PublicationController) ListByUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	owner, err := c.users.GetByID(id)
	if errors.Is(err, services.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		global.Logger.Error().Err(err).Uint("user", id).Msg("user lookup failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	posts, err := c.posts.ListByUser(owner.ID)
	if err != nil {
		global.Logger.Error().Err(err).Uint("user", owner.ID).Msg("publication listing failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeData(w, http.StatusOK, schemas.DumpPublications(posts))
}

func (c *PublicationController) fetch(w http.ResponseWriter, r *http.Request) (*models.Publication, bool) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid post id")
		return nil, false
	}
	post, err := c.posts.GetByID(id)
	if errors.Is(err, services.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Post not found")
		return nil, false
	}
	if err != nil {
		global.Logger.Error().Err(err).Uint("post", id).Msg("publication lookup failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	return post, true
}
