package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/lsoftware/inventory/internal/database"
	apperrors "github.com/lsoftware/inventory/internal/errors"
	"github.com/lsoftware/inventory/internal/user/domain"
	appValidation "github.com/lsoftware/inventory/internal/validation"
)

// newPasswordRule is applied to every password chosen through the API.
var newPasswordRule = appValidation.PasswordStrength{
	MinLength:      8,
	RequireUpper:   true,
	RequireLower:   true,
	RequireNumber:  true,
	RequireSpecial: false,
}

// userUseCase implements UserUseCase.
type userUseCase struct {
	txManager      database.TxManager
	userRepo       UserRepository
	roleRepo       RoleRepository
	passwordHasher PasswordHasher
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	roleRepo RoleRepository,
	passwordHasher PasswordHasher,
) UserUseCase {
	return &userUseCase{
		txManager:      txManager,
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		passwordHasher: passwordHasher,
	}
}

func validateCreateUserInput(input *domain.CreateUserInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Document,
			validation.Required.Error("document is required"),
			appValidation.Document,
		),
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("name must be between 1 and 100 characters"),
		),
		validation.Field(&input.LastName,
			validation.Required.Error("last name is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("last name must be between 1 and 100 characters"),
		),
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.NoWhitespace,
			appValidation.Username,
			validation.Length(3, 50).Error("username must be between 3 and 50 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			newPasswordRule,
		),
		validation.Field(&input.RoleIDs,
			validation.Required.Error("at least one role is required"),
		),
	)
	return appValidation.WrapValidationError(err)
}

func validateUpdateUserInput(input *domain.UpdateUserInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("name must be between 1 and 100 characters"),
		),
		validation.Field(&input.LastName,
			validation.Required.Error("last name is required"),
			appValidation.NotBlank,
			validation.Length(1, 100).Error("last name must be between 1 and 100 characters"),
		),
		validation.Field(&input.RoleIDs,
			validation.Required.Error("at least one role is required"),
		),
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}
	// Deletion goes through Delete only.
	if input.Status != domain.StatusActive && input.Status != domain.StatusInactive {
		return domain.ErrInvalidStatus
	}
	return nil
}

func validateChangePasswordInput(input *domain.ChangePasswordInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.NotBlank,
		),
		validation.Field(&input.OldPassword,
			validation.Required.Error("old password is required"),
		),
		validation.Field(&input.NewPassword,
			validation.Required.Error("new password is required"),
			validation.Length(8, 128).Error("new password must be between 8 and 128 characters"),
			newPasswordRule,
		),
	)
	return appValidation.WrapValidationError(err)
}

// resolveRoles keeps the existing roles among ids and fails when none exist.
func (u *userUseCase) resolveRoles(ctx context.Context, ids []uuid.UUID) ([]domain.Role, error) {
	found, err := u.roleRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, domain.ErrRoleNotFound
	}

	roles := make([]domain.Role, 0, len(found))
	for _, role := range found {
		roles = append(roles, *role)
	}
	return roles, nil
}

// Create registers a new active user.
func (u *userUseCase) Create(ctx context.Context, input *domain.CreateUserInput) (*domain.User, error) {
	if err := validateCreateUserInput(input); err != nil {
		return nil, err
	}

	username := domain.NormalizeUsername(input.Username)
	document := strings.TrimSpace(input.Document)

	exists, err := u.userRepo.ExistsByDocumentOrUsername(ctx, document, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	roles, err := u.resolveRoles(ctx, input.RoleIDs)
	if err != nil {
		return nil, err
	}

	hashed, err := u.passwordHasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Document:  document,
		Name:      strings.TrimSpace(input.Name),
		LastName:  strings.TrimSpace(input.LastName),
		Username:  username,
		Password:  hashed,
		Status:    domain.StatusActive,
		Roles:     roles,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		return u.userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Update modifies a live user.
func (u *userUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	input *domain.UpdateUserInput,
) (*domain.User, error) {
	if err := validateUpdateUserInput(input); err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	roles, err := u.resolveRoles(ctx, input.RoleIDs)
	if err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(input.Name)
	user.LastName = strings.TrimSpace(input.LastName)
	user.Status = input.Status
	user.Roles = roles
	user.UpdatedAt = time.Now().UTC()

	err = u.txManager.WithTx(ctx, func(ctx context.Context) error {
		return u.userRepo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Get retrieves a live user by ID.
func (u *userUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// List returns a page of live users.
func (u *userUseCase) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	return u.userRepo.List(ctx, offset, limit)
}

// Delete soft deletes a user.
func (u *userUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.userRepo.SoftDelete(ctx, id)
}

// ChangePassword replaces the password of the authenticated user after checking the old one.
func (u *userUseCase) ChangePassword(
	ctx context.Context,
	principalName string,
	input *domain.ChangePasswordInput,
) error {
	if err := validateChangePasswordInput(input); err != nil {
		return err
	}

	if principalName == "" || domain.NormalizeUsername(input.Username) != principalName {
		return domain.ErrPasswordChangeNotPermitted
	}

	user, err := u.userRepo.GetByUsername(ctx, principalName)
	if err != nil {
		if apperrors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrPasswordChangeNotPermitted
		}
		return err
	}
	if !user.IsActive() {
		return domain.ErrPasswordChangeNotPermitted
	}

	if !u.passwordHasher.Compare(input.OldPassword, user.Password) {
		return domain.ErrOldPasswordMismatch
	}

	hashed, err := u.passwordHasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	return u.userRepo.UpdatePassword(ctx, user.ID, hashed)
}
