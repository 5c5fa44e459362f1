package repository

import "errors"

var (
	// ErrNotFound is returned (wrapped) when a lookup by id matches no row.
	ErrNotFound = errors.New("not found")

	// ErrIDAssigned is returned by Add when the entity already carries an id.
	ErrIDAssigned = errors.New("entity already has an id")
)
