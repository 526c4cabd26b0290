// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package categorytree

import "errors"

var (
	// ErrNotFound is returned when an id does not exist in the tree.
	ErrNotFound = errors.New("category not found")

	// ErrInvalidMove is returned for moves that would lose a node, create a
	// cycle, or reference an unknown node or position. The input tree is
	// never modified when it is returned.
	ErrInvalidMove = errors.New("invalid move")

	// ErrInvariant is returned by Validate and Build when a tree is not
	// well-formed.
	ErrInvariant = errors.New("tree invariant violated")

	// ErrBusy is returned by the controller when a reorder is still waiting
	// for the gateway.
	ErrBusy = errors.New("reorder already in progress")

	// ErrNetwork classifies gateway failures where the request never got a
	// response.
	ErrNetwork = errors.New("network error")

	// ErrServerRejected classifies gateway failures where the server
	// answered with an error.
	ErrServerRejected = errors.New("server rejected")
)
