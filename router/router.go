package router

import (
	"net/http"

	"pubboard/app/controllers"
	"pubboard/app/middleware"

	"github.com/gorilla/mux"
)

// New builds the /api/v1 route table. Mutating routes additionally run
// ownership checks inside the controllers; auth runs here.
func New(authCtrl *controllers.AuthController, userCtrl *controllers.UserController, pubCtrl *controllers.PublicationController, auth *middleware.Auth, limiter *middleware.LoginLimiter) http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// public
	api.HandleFunc("/users", userCtrl.Register).Methods(http.MethodPost)
	api.Handle("/users/login", limiter.Limit(http.HandlerFunc(authCtrl.Login))).Methods(http.MethodPost)

	// users
	api.Handle("/users", auth.RequireAuth(http.HandlerFunc(userCtrl.List))).Methods(http.MethodGet)
	api.Handle("/users/{id:[0-9]+}", auth.RequireAuth(http.HandlerFunc(userCtrl.Get))).Methods(http.MethodGet)
	api.Handle("/users/{id:[0-9]+}", auth.RequireAuth(http.HandlerFunc(userCtrl.Patch))).Methods(http.MethodPatch)
	api.Handle("/users/{id:[0-9]+}", auth.RequireAuth(http.HandlerFunc(userCtrl.Put))).Methods(http.MethodPut)
	api.Handle("/users/{id:[0-9]+}", auth.RequireAuth(http.HandlerFunc(userCtrl.Delete))).Methods(http.MethodDelete)
	api.Handle("/users/{id:[0-9]+}/publications", auth.RequireAuth(http.HandlerFunc(pubCtrl.ListByUser))).Methods(http.MethodGet)

	// publications
	api.Handle("/publications", auth.RequireAuth(http.HandlerFunc(pubCtrl.Create))).Methods(http.MethodPost)
	api.Handle("/publications", auth.RequireAuth(http.HandlerFunc(pubCtrl.List))).Methods(http.MethodGet)
	api.Handle("/publications/{id:[0-9]+}", auth.RequireAuth(http.HandlerFunc(pubCtrl.Get))).Methods(http.MethodGet)
	api.Handle("/publications/{id:[0-9]+}", auth.RequireAuth(http.HandlerFunc(pubCtrl.Patch))).Methods(http.MethodPatch)
	api.Handle("/publications/{id:[0-9]+}", auth.RequireAuth(http.HandlerFunc(pubCtrl.Put))).Methods(http.MethodPut)
	api.Handle("/publications/{id:[0-9]+}", auth.RequireAuth(http.HandlerFunc(pubCtrl.Delete))).Methods(http.MethodDelete)

	return r
}
