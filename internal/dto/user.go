package dto

import (
	"time"

	"github.com/dealdesk/deal_workflow_app/internal/core/domain"
)

// RegisterRequest defines the payload for creating a user account. The role is
// chosen at registration; this stands in for a real identity system.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required,workflowrole"`
}

// LoginRequest defines the payload for username/password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse defines the user data exposed by the API.
type UserResponse struct {
	UserID    string    `json:"userID"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// RoleResponse describes one entry of the role directory.
type RoleResponse struct {
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
	Escalation  bool   `json:"escalation"` // Part of the escalation override chain
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// ToRoleResponses builds the role directory from the known roles.
func ToRoleResponses() []RoleResponse {
	responses := make([]RoleResponse, len(domain.AllRoles))
	for i, role := range domain.AllRoles {
		responses[i] = RoleResponse{
			Role:        string(role),
			DisplayName: role.DisplayName(),
			Escalation:  role.IsEscalationChainRole(),
		}
	}
	return responses
}
