package services

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUnknownEmail  = errors.New("no user with that email")
	ErrWrongPassword = errors.New("wrong password")
)
