package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/lsoftware/inventory/internal/user/domain"
	appValidation "github.com/lsoftware/inventory/internal/validation"
)

// authorityPrefix is added when authorities become permissions, so stored names must not carry it.
const authorityPrefix = "ROLE_"

var withoutAuthorityPrefix = validation.NewStringRuleWithError(
	func(s string) bool {
		return !strings.HasPrefix(strings.ToUpper(s), authorityPrefix)
	},
	validation.NewError("validation_role_prefix", "must not start with "+authorityPrefix),
)

// roleUseCase implements RoleUseCase.
type roleUseCase struct {
	roleRepo RoleRepository
}

// NewRoleUseCase creates a new RoleUseCase.
func NewRoleUseCase(roleRepo RoleRepository) RoleUseCase {
	return &roleUseCase{roleRepo: roleRepo}
}

func validateCreateRoleInput(input *domain.CreateRoleInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NoWhitespace,
			appValidation.Username,
			withoutAuthorityPrefix,
			validation.Length(2, 50).Error("name must be between 2 and 50 characters"),
		),
		validation.Field(&input.Description,
			validation.Length(0, 255).Error("description must be at most 255 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create registers a role. The name is stored upper-cased.
func (r *roleUseCase) Create(ctx context.Context, input *domain.CreateRoleInput) (*domain.Role, error) {
	if err := validateCreateRoleInput(input); err != nil {
		return nil, err
	}

	role := &domain.Role{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        domain.NormalizeRoleName(input.Name),
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   time.Now().UTC(),
	}
	if err := r.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// List returns every role.
func (r *roleUseCase) List(ctx context.Context) ([]*domain.Role, error) {
	return r.roleRepo.List(ctx)
}
