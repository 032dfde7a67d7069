package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appIdentity "github.com/procure/backend/internal/application/identity"
	"github.com/procure/backend/internal/domain/identity"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/procure/backend/internal/interfaces/http/dto"
	"github.com/procure/backend/internal/interfaces/http/middleware"
)

// UserHandler handles admin user management endpoints
type UserHandler struct {
	BaseHandler
	userService *appIdentity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *appIdentity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers user management routes on the API group
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", h.List)
		users.GET("/pending", h.Pending)
		users.PUT("/:id/role", h.AssignRole)
		users.DELETE("/:id", h.Delete)
	}
}

// List returns all user accounts, paginated
func (h *UserHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	role := identity.Role(middleware.GetJWTRole(c))
	page, err := h.userService.ListUsers(c.Request.Context(), role, toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toUserResponses(page.Items), page.Total, page.Page, page.PageSize)
}

// Pending returns accounts awaiting role approval, oldest first
func (h *UserHandler) Pending(c *gin.Context) {
	role := identity.Role(middleware.GetJWTRole(c))
	infos, err := h.userService.PendingUsers(c.Request.Context(), role)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUserResponses(infos))
}

// AssignRole sets the target user's role and approves the account
func (h *UserHandler) AssignRole(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.HandleError(c, shared.NewDomainError(dto.ErrCodeInvalidFormat, "Invalid user ID"))
		return
	}

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	role := identity.Role(middleware.GetJWTRole(c))
	info, err := h.userService.AssignRole(c.Request.Context(), role, appIdentity.AssignRoleInput{
		TargetUserID: targetID,
		Role:         identity.Role(req.Role),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUserResponse(*info))
}

// Delete removes a user account. The account's documents remain.
func (h *UserHandler) Delete(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.HandleError(c, shared.NewDomainError(dto.ErrCodeInvalidFormat, "Invalid user ID"))
		return
	}

	actorID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	role := identity.Role(middleware.GetJWTRole(c))
	if err := h.userService.DeleteUser(c.Request.Context(), role, actorID, targetID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func toUserResponses(infos []appIdentity.UserInfo) []UserResponse {
	out := make([]UserResponse, len(infos))
	for i := range infos {
		out[i] = toUserResponse(infos[i])
	}
	return out
}
