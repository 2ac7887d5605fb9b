package core

import (
	"sort"
	"strings"
)

// A Permission is a capability held by a user, independent of any node.
type Permission string

const (
	GrantView   Permission = "grant_view"
	GrantUpdate Permission = "grant_update"
	GrantDelete Permission = "grant_delete"
)

// GrantPermissions are the permissions which give access to the grant tab.
var GrantPermissions = []Permission{GrantView, GrantUpdate, GrantDelete}

func (p Permission) String() string {
	return string(p)
}

func (p Permission) Valid() bool {
	switch p {
	case GrantView, GrantUpdate, GrantDelete:
		return true
	default:
		return false
	}
}

// PermissionSet is the set of permissions a user holds. The zero value is an empty set.
type PermissionSet map[Permission]struct{}

func NewPermissionSet(perms ...Permission) PermissionSet {
	var set = make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

func (set PermissionSet) Has(p Permission) bool {
	_, ok := set[p]
	return ok
}

// HasAny returns true if the set contains at least one of the given permissions.
func (set PermissionSet) HasAny(perms ...Permission) bool {
	for _, p := range perms {
		if set.Has(p) {
			return true
		}
	}
	return false
}

func (set PermissionSet) String() string {
	var names = make([]string, 0, len(set))
	for p := range set {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

type PermissionDB interface {
	GetPermissions(userID int) (PermissionSet, error)
	InsertPermission(userID int, perm Permission) error
	RemovePermission(userID int, perm Permission) error
}
