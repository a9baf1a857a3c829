package controllers

import (
	"errors"
	"net/http"

	jwtutil "pubboard/app/jwt"
	"pubboard/app/middleware"
	"pubboard/app/schemas"
	"pubboard/app/services"
	"pubboard/global"
)

type AuthController struct {
	users  *services.UserService
	signer *jwtutil.Signer
	schema schemas.Schema
}

func NewAuthController(users *services.UserService, signer *jwtutil.Signer) *AuthController {
	return &AuthController{users: users, signer: signer, schema: schemas.Login()}
}

// Login POST /api/v1/users/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
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

	user, err := c.users.ValidateCredentials(data["email"].(string), data["password"].(string))
	if errors.Is(err, services.ErrUnknownEmail) {
		writeMessage(w, http.StatusUnauthorized, "Could not verify")
		return
	}
	if errors.Is(err, services.ErrWrongPassword) {
		writeMessage(w, http.StatusUnauthorized, "Could not verify, wrong password")
		return
	}
	if err != nil {
		global.Logger.Error().Err(err).Msg("login lookup failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := c.signer.Sign(user.ID)
	if err != nil {
		global.Logger.Error().Err(err).Uint("user", user.ID).Msg("token signing failed")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{Name: middleware.TokenHeader, Value: token, Path: "/"})
	writeJSON(w, http.StatusOK, map[string]any{
		"id":       user.ID,
		"fullname": user.Fullname,
		"token":    token,
	})
}
