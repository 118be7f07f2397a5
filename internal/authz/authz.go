// Package authz decides whether a resolved identity may act on a project.
// The check is a pure function of its arguments; callers pass the identity
// explicitly and are responsible for checking existence (404) before
// ownership (403). Tasks have no owner of their own, so task operations
// resolve the parent project and apply the same check.
package authz

import (
	"github.com/google/uuid"

	"github.com/taskhive-dev/taskhive/internal/models"
)

// Owns reports whether identity is the owner of project.
func Owns(identity uuid.UUID, project *models.Project) bool {
	return project.OwnerID == identity
}
