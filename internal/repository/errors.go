// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios. For example,
// ErrUsernameExists and ErrEmailExists carry which unique field collided so
// registration can report a 409 with the offending field name, while
// ErrRoadmapNotFound maps to a 404.
package repository

import "errors"

// ErrUsernameExists is returned when an insert or update collides with an
// existing username. Handlers translate this into HTTP 409 with
// field "username".
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned when an insert or update collides with an
// existing email. Handlers translate this into HTTP 409 with
// field "email".
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrRoadmapNotFound is returned when a roadmap lookup matches no row.
// Handlers translate this into HTTP 404.
var ErrRoadmapNotFound = errors.New("roadmap not found")

// ErrRefreshNotFound is returned when a refresh token hash is not among a
// user's stored tokens (unknown, pruned, revoked or expired). Handlers
// translate this into HTTP 401.
var ErrRefreshNotFound = errors.New("refresh token not found")
