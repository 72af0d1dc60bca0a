// Package policy holds the single ownership/role authorization
// decision shared by every entity mutation path.
package policy

import "github.com/hjkwon-dev/miniblog/models"

// Actor is the caller identity resolved once per request from the
// bearer token and passed explicitly into every operation.
type Actor struct {
	ID       uint
	Username string
	Role     string
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanModify decides whether the actor may mutate an entity owned by
// ownerID: the owner may, and so may an admin. Pure, no I/O.
func CanModify(actor Actor, ownerID uint) bool {
	return actor.ID == ownerID || actor.IsAdmin()
}
