package ecs

import "github.com/rotisserie/eris"

var (
	// ErrNotFound is returned when an entity or one of its components cannot be resolved.
	ErrNotFound = eris.New("not found")

	// ErrAlreadyPresent is returned when a component is added to an entity that already has one of that type.
	ErrAlreadyPresent = eris.New("component already present")
)
