package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/taskhive-dev/taskhive/internal/types"
)

func CurrentUser(ctx *gin.Context) (types.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return types.AuthenticatedUser{}, fmt.Errorf("user not authenticated")
	}

	authenticatedUser, ok := user.(types.AuthenticatedUser)

	if !ok {
		return types.AuthenticatedUser{}, fmt.Errorf("invalid user type in context")
	}

	return authenticatedUser, nil
}

func CurrentUserID(ctx *gin.Context) (uuid.UUID, error) {
	user, err := CurrentUser(ctx)

	if err != nil {
		return uuid.Nil, err
	}

	return user.ID, nil
}

// ProjectID parses the project identifier from the route path.
func ProjectID(ctx *gin.Context) (uuid.UUID, error) {
	return pathUUID(ctx, "projectId")
}

// TaskID parses the task identifier from the route path.
func TaskID(ctx *gin.Context) (uuid.UUID, error) {
	return pathUUID(ctx, "taskId")
}

func pathUUID(ctx *gin.Context, param string) (uuid.UUID, error) {
	raw := ctx.Param(param)

	if raw == "" {
		return uuid.Nil, fmt.Errorf("%s not found", param)
	}

	id, err := uuid.Parse(raw)

	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", param)
	}

	return id, nil
}
