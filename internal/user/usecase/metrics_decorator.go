package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lsoftware/inventory/internal/metrics"
	"github.com/lsoftware/inventory/internal/user/domain"
)

const metricsDomain = "users"

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, u.metrics, metricsDomain, operation, start, metrics.Status(err))
}

// Create records metrics for user creation.
func (u *userUseCaseWithMetrics) Create(ctx context.Context, input *domain.CreateUserInput) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Create(ctx, input)
	u.record(ctx, "user_create", start, err)
	return user, err
}

// Update records metrics for user updates.
func (u *userUseCaseWithMetrics) Update(
	ctx context.Context,
	id uuid.UUID,
	input *domain.UpdateUserInput,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Update(ctx, id, input)
	u.record(ctx, "user_update", start, err)
	return user, err
}

// Get records metrics for user retrieval.
func (u *userUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Get(ctx, id)
	u.record(ctx, "user_get", start, err)
	return user, err
}

// List records metrics for user listing.
func (u *userUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	start := time.Now()
	users, err := u.next.List(ctx, offset, limit)
	u.record(ctx, "user_list", start, err)
	return users, err
}

// Delete records metrics for user deletion.
func (u *userUseCaseWithMetrics) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()
	err := u.next.Delete(ctx, id)
	u.record(ctx, "user_delete", start, err)
	return err
}

// ChangePassword records metrics for password changes.
func (u *userUseCaseWithMetrics) ChangePassword(
	ctx context.Context,
	principalName string,
	input *domain.ChangePasswordInput,
) error {
	start := time.Now()
	err := u.next.ChangePassword(ctx, principalName, input)
	u.record(ctx, "user_change_password", start, err)
	return err
}

// roleUseCaseWithMetrics decorates RoleUseCase with metrics instrumentation.
type roleUseCaseWithMetrics struct {
	next    RoleUseCase
	metrics metrics.BusinessMetrics
}

// NewRoleUseCaseWithMetrics wraps a RoleUseCase with metrics recording.
func NewRoleUseCaseWithMetrics(useCase RoleUseCase, m metrics.BusinessMetrics) RoleUseCase {
	return &roleUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for role creation.
func (r *roleUseCaseWithMetrics) Create(ctx context.Context, input *domain.CreateRoleInput) (*domain.Role, error) {
	start := time.Now()
	role, err := r.next.Create(ctx, input)

	metrics.Observe(ctx, r.metrics, metricsDomain, "role_create", start, metrics.Status(err))
	return role, err
}

// List records metrics for role listing.
func (r *roleUseCaseWithMetrics) List(ctx context.Context) ([]*domain.Role, error) {
	start := time.Now()
	roles, err := r.next.List(ctx)

	metrics.Observe(ctx, r.metrics, metricsDomain, "role_list", start, metrics.Status(err))
	return roles, err
}
