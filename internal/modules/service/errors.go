package service

import "errors"

// Service layer errors, translated from repo failures so handlers can map
// them to status codes.
var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrFileNodeNotFound   = errors.New("file node not found")
	ErrDeploymentNotFound = errors.New("deployment not found")
	ErrUserNotFound       = errors.New("user not found")

	ErrEmailTaken = errors.New("email already registered")
	ErrSlugTaken  = errors.New("project slug could not be made unique")
	ErrPathTaken  = errors.New("path already exists in project")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrInvalidCursor = errors.New("invalid pagination cursor")

	ErrEmptyName   = errors.New("name must not be empty")
	ErrEmptyPath   = errors.New("path must not be empty")
	ErrEmptyPrompt = errors.New("prompt must not be empty")
)
