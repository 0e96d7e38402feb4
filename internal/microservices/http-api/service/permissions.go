package service

import (
	"reviewhub/internal/authz"
	"reviewhub/internal/microservices/http-api/models"
)

// canModify allows the author, and any role the policy lets moderate object.
func canModify(perms authz.Authorizer, actor *models.User, authorID int64, object string) error {
	if actor == nil {
		return ErrForbidden
	}
	if actor.ID == authorID {
		return nil
	}
	if perms != nil && perms.Can(actor.Role, object, authz.ActModerate) {
		return nil
	}
	return ErrForbidden
}
