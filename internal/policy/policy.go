// Package policy decides who may mutate what. Every function is pure and must
// be handed an actor loaded for the current request, with its Role preloaded.
package policy

import "problemas/internal/models"

// CanModify reports whether actor may edit or delete a resource owned by ownerID:
// owners may touch their own resources, admins may touch anything.
func CanModify(actor models.User, ownerID uint) bool {
	return actor.ID == ownerID || actor.IsAdmin()
}

// IsAdmin gates the management endpoints.
func IsAdmin(actor models.User) bool {
	return actor.IsAdmin()
}
