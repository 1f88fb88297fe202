package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	userDomain "github.com/lsoftware/inventory/internal/user/domain"
	userUseCase "github.com/lsoftware/inventory/internal/user/usecase"
)

type roleOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toRoleOutput(role *userDomain.Role) roleOutput {
	return roleOutput{
		ID:          role.ID.String(),
		Name:        role.Name,
		Description: role.Description,
	}
}

// RunCreateRole registers a role. The name is stored upper-cased and becomes the raw
// authority written into tokens of users holding it.
//
// Requirements: Database must be migrated and accessible.
func RunCreateRole(
	ctx context.Context,
	roleUseCase userUseCase.RoleUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	description string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("creating role", slog.String("name", name))

	role, err := roleUseCase.Create(ctx, &userDomain.CreateRoleInput{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, toRoleOutput(role)); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Role created successfully!\nRole ID: %s\nName: %s\n", role.ID, role.Name)
	}

	logger.Info("role created", slog.String("role_id", role.ID.String()), slog.String("name", role.Name))
	return nil
}

// RunListRoles prints every role.
func RunListRoles(
	ctx context.Context,
	roleUseCase userUseCase.RoleUseCase,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	roles, err := roleUseCase.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list roles: %w", err)
	}

	if format == "json" {
		out := make([]roleOutput, 0, len(roles))
		for _, role := range roles {
			out = append(out, toRoleOutput(role))
		}
		return writeJSON(writer, out)
	}

	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
	for _, role := range roles {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", role.ID, role.Name, role.Description)
	}
	return tw.Flush()
}
