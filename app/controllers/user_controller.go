package controllers

import (
	"errors"
	"net/http"

	"pubboard/app/middleware"
	"pubboard/app/models"
	"pubboard/app/schemas"
	"pubboard/app/services"
	"pubboard/app/storage"
	"pubboard/global"
)

type UserController struct {
	users  *services.UserService
	schema schemas.Schema
}

func NewUserController(users *services.UserService, photos *storage.Store) *UserController {
	return &UserController{users: users, schema: schemas.User(photos.Valid)}
}

// Register POST /api/v1/users
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	form, err := decodeForm(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	data, verr := c.schema.Verify(form, false)
	if verr != nil {
		writeJSON(w, http.StatusBadRequest, verr)
		return
	}

	photo, _ := data["photo"].(string)
	_, err = c.users.Register(data["fullname"].(string), data["email"].(string), data["password"].(string), photo)
	if errors.Is(err, services.ErrEmailTaken) {
		writeMessage(w, http.StatusUnprocessableEntity, "User already exists. Log in")
		return
	}
	if err != nil {
		global.Logger.Error().Err(err).Msg("user registration failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeMessage(w, http.StatusCreated, "Successfully registered.")
}

// List GET /api/v1/users
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.users.ListAll()
	if err != nil {
		global.Logger.Error().Err(err).Msg("user listing failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeData(w, http.StatusOK, schemas.DumpUsers(users))
}

// Get GET /api/v1/users/{id}
func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := c.fetch(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusOK, schemas.DumpUser(user))
}

// Patch PATCH /api/v1/users/{id} — only supplied fields are validated and
// applied.
func (c *UserController) Patch(w http.ResponseWriter, r *http.Request) {
	c.update(w, r, true)
}

// Put PUT /api/v1/users/{id} — every schema-mandated field is required.
func (c *UserController) Put(w http.ResponseWriter, r *http.Request) {
	c.update(w, r, false)
}

func (c *UserController) update(w http.ResponseWriter, r *http.Request, partial bool) {
	target, ok := c.fetch(w, r)
	if !ok {
		return
	}
	if !c.users.CanMutate(middleware.CurrentUser(r.Context()), target) {
		writeMessage(w, http.StatusForbidden, "You can not update this user")
		return
	}

	form, err := decodeForm(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	data, verr := c.schema.Verify(form, partial)
	if verr != nil {
		writeJSON(w, http.StatusBadRequest, verr)
		return
	}

	updated, err := c.users.Update(target, data)
	if errors.Is(err, services.ErrEmailTaken) {
		writeMessage(w, http.StatusUnprocessableEntity, "Email is already taken")
		return
	}
	if err != nil {
		global.Logger.Error().Err(err).Uint("user", target.ID).Msg("user update failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeData(w, http.StatusOK, schemas.DumpUser(updated))
}

// Delete DELETE /api/v1/users/{id}
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	target, ok := c.fetch(w, r)
	if !ok {
		return
	}
	if !c.users.CanMutate(middleware.CurrentUser(r.Context()), target) {
		writeMessage(w, http.StatusForbidden, "You can not delete this user")
		return
	}
	if err := c.users.Delete(target); err != nil {
		global.Logger.Error().Err(err).Uint("user", target.ID).Msg("user delete failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *UserController) fetch(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid user id")
		return nil, false
	}
	user, err := c.users.GetByID(id)
	if errors.Is(err, services.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "User not found")
		return nil, false
	}
	if err != nil {
		global.Logger.Error().Err(err).Uint("user", id).Msg("user lookup failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	return user, true
}
