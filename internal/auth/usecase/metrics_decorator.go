package usecase

import (
	"context"
	"time"

	authDomain "github.com/lsoftware/inventory/internal/auth/domain"
	"github.com/lsoftware/inventory/internal/errors"
	"github.com/lsoftware/inventory/internal/metrics"
)

// statusBadCredentials separates rejected logins from failures of the login itself.
const statusBadCredentials = "bad_credentials"

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for login token issuance.
func (t *tokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	credentials *authDomain.Credentials,
) (*authDomain.IssueTokenOutput, error) {
	start := time.Now()
	output, err := t.next.Issue(ctx, credentials)

	status := metrics.Status(err)
	if errors.Is(err, authDomain.ErrBadCredentials) {
		status = statusBadCredentials
	}

	metrics.Observe(ctx, t.metrics, "auth", "token_issue", start, status)

	return output, err
}

// Authenticate records metrics for token verification.
func (t *tokenUseCaseWithMetrics) Authenticate(ctx context.Context, token string) (*authDomain.Principal, error) {
	start := time.Now()
	principal, err := t.next.Authenticate(ctx, token)

	status := metrics.Status(err)
	var invalid *authDomain.InvalidTokenError
	if errors.As(err, &invalid) {
		status = "rejected_" + string(invalid.Reason)
	}

	metrics.Observe(ctx, t.metrics, "auth", "token_authenticate", start, status)

	return principal, err
}
