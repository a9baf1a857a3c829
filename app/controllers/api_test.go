package controllers_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pubboard/app/controllers"
	jwtutil "pubboard/app/jwt"
	"pubboard/app/middleware"
	"pubboard/app/models"
	"pubboard/app/repo"
	"pubboard/app/services"
	"pubboard/app/storage"
	"pubboard/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestAPI(t *testing.T) http.Handler {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Publication{}))

	photos := storage.NewStore(t.TempDir())
	userSvc := services.NewUserService(repo.NewUserRepository(db), photos)
	postSvc := services.NewPublicationService(repo.NewPublicationRepository(db))

	signer := &jwtutil.Signer{Secret: []byte("test-secret"), Issuer: "pubboard", ExpMin: 45}
	authCtrl := controllers.NewAuthController(userSvc, signer)
	userCtrl := controllers.NewUserController(userSvc, photos)
	pubCtrl := controllers.NewPublicationController(postSvc, userSvc)
	auth := &middleware.Auth{Signer: signer, Users: userSvc}

	return router.New(authCtrl, userCtrl, pubCtrl, auth, &middleware.LoginLimiter{})
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-access-token", token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func testPhoto(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func register(t *testing.T, h http.Handler, fullname, email, password string) {
	t.Helper()
	w := doJSON(t, h, http.MethodPost, "/api/v1/users", "", map[string]string{
		"fullname": fullname,
		"email":    email,
		"password": password,
		"photo":    testPhoto(t),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func login(t *testing.T, h http.Handler, email, password string) (uint, string) {
	t.Helper()
	w := doJSON(t, h, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	return uint(body["id"].(float64)), body["token"].(string)
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	h := newTestAPI(t)

	w := doJSON(t, h, http.MethodPost, "/api/v1/users", "", map[string]string{
		"fullname": "Jose Chourio",
		"email":    "jose@example.com",
		"password": "calamardo",
		"photo":    testPhoto(t),
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Successfully registered.", decodeBody(t, w)["message"])

	w = doJSON(t, h, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"email":    "jose@example.com",
		"password": "calamardo",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Jose Chourio", body["fullname"])
	assert.NotEmpty(t, body["token"])

	// token also set as cookie
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "x-access-token", cookies[0].Name)
	assert.Equal(t, body["token"], cookies[0].Value)

	// token resolves back to the same user
	id := uint(body["id"].(float64))
	w = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", id), body["token"].(string), nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, float64(id), data["id"])
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	h := newTestAPI(t)

	// missing fields aggregate
	w := doJSON(t, h, http.MethodPost, "/api/v1/users", "", map[string]string{"fullname": "Cristian Solarte"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Validation error", body["message"])
	assert.Len(t, body["fields"], 2)

	// bad photo
	w = doJSON(t, h, http.MethodPost, "/api/v1/users", "", map[string]string{
		"fullname": "A",
		"email":    "a@b.com",
		"password": "x",
		"photo":    "Wrong photo",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// malformed body
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	t.Parallel()

	h := newTestAPI(t)
	register(t, h, "A", "a@b.com", "x")

	w := doJSON(t, h, http.MethodPost, "/api/v1/users", "", map[string]string{
		"fullname": "Antonio Pirela",
		"email":    "a@b.com",
		"password": "culebra",
		"photo":    testPhoto(t),
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "User already exists. Log in", decodeBody(t, w)["message"])

	// first account still works
	_, token := login(t, h, "a@b.com", "x")
	assert.NotEmpty(t, token)
}

func TestLogin_Failures(t *testing.T) {
	t.Parallel()

	h := newTestAPI(t)
	register(t, h, "A", "a@b.com", "right")

	w := doJSON(t, h, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"email":    "a@b.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Could not verify, wrong password", decodeBody(t, w)["message"])

	w = doJSON(t, h, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"email":    "nobody@b.com",
		"password": "x",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Could not verify", decodeBody(t, w)["message"])

	w = doJSON(t, h, http.MethodPost, "/api/v1/users/login", "", map[string]string{"email": "a@b.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuth_Gate(t *testing.T) {
	t.Parallel()

	h := newTestAPI(t)

	w := doJSON(t, h, http.MethodGet, "/api/v1/users", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token is missing", decodeBody(t, w)["message"])

	w = doJSON(t, h, http.MethodGet, "/api/v1/users", "garbage", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token is invalid", decodeBody(t, w)["message"])
}

func TestUserList_OmitsPassword(t *testing.T) {
	t.Parallel()

	h := newTestAPI(t)
	register(t, h, "A", "a@b.com", "x")
	_, token := login(t, h, "a@b.com", "x")

	w := doJSON(t, h, http.MethodGet, "/api/v1/users", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.Contains(t, w.Body.String(), "a@b.com")
}

func TestUser_GetNotFound(t *testing.T) {
	t.Parallel()

	h := newTestAPI(t)
	register(t, h, "A", "a@b.com", "x")
	_, token := login(t, h, "a@b.com", "x")

	w := doJSON(t, h, http.MethodGet, "/api/v1/users/9999", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decodeBody(t, w)["message"])
}

func TestUser_UpdateOwnership(t *testing.T) {
	t.Parallel()

	h := newTestAPI(t)
	register(t, h, "A", "a@b.com", "x")
	register(t, h, "B", "b@b.com", "x")
	aID, aToken := login(t, h, "a@b.com", "x")
	bID, bToken := login(t, h, "b@b.com", "x")

	// B may not touch A
	w := doJSON(t, h, http.MethodPatch, fmt.Sprintf("/api/v1/users/%d", aID), bToken, map[string]string{"fullname": "Hacked"})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You can not update this user", decodeBody(t, w)["message"])

	// A updates themselves; unspecified fields survive
	w = doJSON(t, h, http.MethodPatch, fmt.Sprintf("/api/v1/users/%d", aID), aToken, map[string]string{"fullname": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "Renamed", data["fullname"])
	assert.Equal(t, "a@b.com", data["email"])

	// PUT demands the full schema
	w = doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", aID), aToken, map[string]string{"fullname": "Only Name"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/v1/users/%d", aID), aToken, map[string]string{
		"fullname": "Full Update",
		"email":    "a@b.com",
		"password": "x2",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// PATCH onto someone else's email conflicts
	w = doJSON(t, h, http.MethodPatch, fmt.Sprintf("/api/v1/users/%d", bID), bToken, map[string]string{"email": "a@b.com"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Email is already taken", decodeBody(t, w)["message"])
}

func TestUser_Delete(t *testing.T) {
	t.Parallel()

	h := newTestAPI(t)
	register(t, h, "A", "a@b.com", "x")
	register(t, h, "B", "b@b.com", "x")
	aID, aToken := login(t, h, "a@b.com", "x")
	_, bToken := login(t, h, "b@b.com", "x")

	w := doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", aID), bToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", aID), aToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	// the deleted user's token no longer resolves
	w = doJSON(t, h, http.MethodGet, "/api/v1/users", aToken, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token is invalid", decodeBody(t, w)["message"])
}

func TestPublication_CRUD(t *testing.T) {
	t.Parallel()

	h := newTestAPI(t)
	register(t, h, "Owner", "owner@b.com", "x")
	register(t, h, "Other", "other@b.com", "x")
	ownerID, ownerToken := login(t, h, "owner@b.com", "x")
	_, otherToken := login(t, h, "other@b.com", "x")

	// create requires auth
	w := doJSON(t, h, http.MethodPost, "/api/v1/publications", "", map[string]string{"title": "T", "description": "D"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, h, http.MethodPost, "/api/v1/publications", ownerToken, map[string]string{
		"title":       "First post",
		"description": "Hello world",
		"priority":    "URGENT",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeBody(t, w)["data"].(map[string]any)
	postID := uint(data["id"].(float64))
	assert.Equal(t, float64(ownerID), data["user_id"])
	assert.Equal(t, "URGENT", data["priority"])
	assert.Equal(t, "1", data["status"])
	assert.NotEmpty(t, data["posted_ago"])

	// unknown keys are rejected, owner included
	w = doJSON(t, h, http.MethodPost, "/api/v1/publications", ownerToken, map[string]any{
		"title":       "T",
		"description": "D",
		"user_id":     999,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// list and detail
	w = doJSON(t, h, http.MethodGet, "/api/v1/publications", otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 1)

	w = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/v1/publications/%d", postID), otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// mutation is owner-only
	w = doJSON(t, h, http.MethodPatch, fmt.Sprintf("/api/v1/publications/%d", postID), otherToken, map[string]string{"title": "Hijacked"})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Unauthorized for update this post", decodeBody(t, w)["message"])

	w = doJSON(t, h, http.MethodPatch, fmt.Sprintf("/api/v1/publications/%d", postID), ownerToken, map[string]string{"title": "Edited"})
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "Edited", data["title"])
	assert.Equal(t, "Hello world", data["description"])

	// full update requires all fields
	w = doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/v1/publications/%d", postID), ownerToken, map[string]string{"title": "Incomplete"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/v1/publications/%d", postID), ownerToken, map[string]string{
		"title":       "Replaced",
		"description": "All new",
		"priority":    "NORMAL",
		"status":      "1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// delete is owner-only, then the post is gone
	w = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/v1/publications/%d", postID), otherToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Unauthorized for delete post", decodeBody(t, w)["message"])

	w = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/v1/publications/%d", postID), ownerToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/v1/publications/%d", postID), ownerToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post not found", decodeBody(t, w)["message"])
}

func TestUserPublications(t *testing.T) {
	t.Parallel()

	h := newTestAPI(t)
	register(t, h, "Owner", "owner@b.com", "x")
	register(t, h, "Other", "other@b.com", "x")
	ownerID, ownerToken := login(t, h, "owner@b.com", "x")
	_, otherToken := login(t, h, "other@b.com", "x")

	for i := 0; i < 2; i++ {
		w := doJSON(t, h, http.MethodPost, "/api/v1/publications", ownerToken, map[string]string{"title": "T", "description": "D"})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/v1/users/%d/publications", ownerID), otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 2)

	w = doJSON(t, h, http.MethodGet, "/api/v1/users/9999/publications", otherToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decodeBody(t, w)["message"])
}
