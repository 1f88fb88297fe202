package commands

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	userDomain "github.com/lsoftware/inventory/internal/user/domain"
	userUseCase "github.com/lsoftware/inventory/internal/user/usecase"
)

// CreateUserParams holds the create-user flags.
type CreateUserParams struct {
	Document string
	Name     string
	LastName string
	Username string
	// Password is prompted for on the reader when empty.
	Password string
	// Roles is a comma-separated list of role names.
	Roles  string
	Format string
}

// RunCreateUser registers an active user. It is the way to bootstrap the first
// administrator, since every user endpoint requires ROLE_ADMIN.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	users userUseCase.UserUseCase,
	roles userUseCase.RoleUseCase,
	logger *slog.Logger,
	params CreateUserParams,
	io IOTuple,
) error {
	if err := validateFormat(params.Format); err != nil {
		return err
	}

	roleIDs, err := resolveRoleIDs(ctx, roles, params.Roles)
	if err != nil {
		return err
	}

	password := params.Password
	if password == "" {
		password, err = promptForPassword(io)
		if err != nil {
			return err
		}
	}

	logger.Info("creating user", slog.String("username", params.Username))

	user, err := users.Create(ctx, &userDomain.CreateUserInput{
		Document: params.Document,
		Name:     params.Name,
		LastName: params.LastName,
		Username: params.Username,
		Password: password,
		RoleIDs:  roleIDs,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if params.Format == "json" {
		if err := writeJSON(io.Writer, map[string]any{
			"id":       user.ID.String(),
			"username": user.Username,
			"roles":    user.RoleNames(),
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(io.Writer, "User created successfully!")
		_, _ = fmt.Fprintf(io.Writer, "User ID: %s\n", user.ID)
		_, _ = fmt.Fprintf(io.Writer, "Username: %s\n", user.Username)
		_, _ = fmt.Fprintf(io.Writer, "Roles: %s\n", strings.Join(user.RoleNames(), ", "))
	}

	logger.Info("user created", slog.String("user_id", user.ID.String()), slog.String("username", user.Username))
	return nil
}

// resolveRoleIDs maps comma-separated role names to IDs, matching names case-insensitively.
func resolveRoleIDs(ctx context.Context, roles userUseCase.RoleUseCase, names string) ([]uuid.UUID, error) {
	var wanted []string
	for name := range strings.SplitSeq(names, ",") {
		if normalized := userDomain.NormalizeRoleName(name); normalized != "" {
			wanted = append(wanted, normalized)
		}
	}
	if len(wanted) == 0 {
		return nil, fmt.Errorf("at least one role is required")
	}

	existing, err := roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	byName := make(map[string]uuid.UUID, len(existing))
	for _, role := range existing {
		byName[role.Name] = role.ID
	}

	ids := make([]uuid.UUID, 0, len(wanted))
	for _, name := range wanted {
		id, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown role: %s", name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func promptForPassword(io IOTuple) (string, error) {
	if io.Reader == nil {
		return "", fmt.Errorf("password is required")
	}

	_, _ = fmt.Fprint(io.Writer, "Enter password: ")
	password, err := bufio.NewReader(io.Reader).ReadString('\n')
	if err != nil && password == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	password = strings.TrimRight(password, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}
