package dto

import (
	"github.com/google/uuid"

	"github.com/lsoftware/inventory/internal/user/domain"
)

// parseIDs converts validated role ID strings.
func parseIDs(values []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		ids = append(ids, uuid.MustParse(value))
	}
	return ids
}

// ToCreateUserInput converts a validated CreateUserRequest into use case input.
func ToCreateUserInput(req CreateUserRequest) *domain.CreateUserInput {
	return &domain.CreateUserInput{
		Document: req.Document,
		Name:     req.Name,
		LastName: req.LastName,
		Username: req.Username,
		Password: req.Password,
		RoleIDs:  parseIDs(req.Roles),
	}
}

// ToUpdateUserInput converts a validated UpdateUserRequest into use case input.
func ToUpdateUserInput(req UpdateUserRequest) *domain.UpdateUserInput {
	return &domain.UpdateUserInput{
		Name:     req.Name,
		LastName: req.LastName,
		Status:   domain.Status(*req.Status),
		RoleIDs:  parseIDs(req.Roles),
	}
}

// ToChangePasswordInput converts a ChangePasswordRequest into use case input.
func ToChangePasswordInput(req ChangePasswordRequest) *domain.ChangePasswordInput {
	return &domain.ChangePasswordInput{
		Username:    req.Username,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}
}

// ToCreateRoleInput converts a CreateRoleRequest into use case input.
func ToCreateRoleInput(req CreateRoleRequest) *domain.CreateRoleInput {
	return &domain.CreateRoleInput{
		Name:        req.Name,
		Description: req.Description,
	}
}

// ToRoleResponse converts a domain role to its API representation.
func ToRoleResponse(role *domain.Role) RoleResponse {
	return RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
	}
}

// ToRoleListResponse converts domain roles to API representations.
func ToRoleListResponse(roles []*domain.Role) []RoleResponse {
	responses := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		responses = append(responses, ToRoleResponse(role))
	}
	return responses
}

// ToUserResponse converts a domain user to its API representation.
// This enforces the boundary between internal domain models and external API contracts.
func ToUserResponse(user *domain.User) UserResponse {
	roles := make([]RoleResponse, 0, len(user.Roles))
	for i := range user.Roles {
		roles = append(roles, ToRoleResponse(&user.Roles[i]))
	}
	return UserResponse{
		ID:        user.ID,
		Document:  user.Document,
		Name:      user.Name,
		LastName:  user.LastName,
		Username:  user.Username,
		Status:    int(user.Status),
		Roles:     roles,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToListUsersResponse converts one page of users.
func ToListUsersResponse(users []*domain.User, offset, limit int) ListUsersResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, ToUserResponse(user))
	}
	return ListUsersResponse{
		Offset: offset,
		Limit:  limit,
		Users:  responses,
	}
}
