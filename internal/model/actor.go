// Package model defines the data structures for guard tag resolution.
package model

import "fmt"

// ActorKey identifies whose permissions a guard tag declares. Kind is an
// open vocabulary ("ai", "human", "team", ...); Identifier narrows the kind
// to a specific member ("gpt-4", "team-a") and may be empty.
//
// Two ActorKeys are equal iff both fields match exactly (case-sensitive),
// which the struct's comparability gives us for free.
type ActorKey struct {
	Kind       string
	Identifier string
}

// String renders the key in tag syntax: "ai" or "ai[gpt-4]".
func (a ActorKey) String() string {
	if a.Identifier == "" {
		return a.Kind
	}

	return fmt.Sprintf("%s[%s]", a.Kind, a.Identifier)
}

// Permission is the access level a guard tag grants an actor.
type Permission string

const (
	// PermissionRead allows the actor to read but not modify the region.
	PermissionRead Permission = "read"
	// PermissionWrite allows the actor to modify the region.
	PermissionWrite Permission = "write"
	// PermissionNone denies the actor any access to the region.
	PermissionNone Permission = "none"
	// PermissionContext marks documentation the actor should load as context.
	PermissionContext Permission = "context"

	// PermissionDefault is the implicit state of lines no tag governs.
	// It is distinct from all four declared permissions.
	PermissionDefault Permission = "default"
)
