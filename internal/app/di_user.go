package app

import (
	"fmt"

	"github.com/lsoftware/inventory/internal/database"
	userHTTP "github.com/lsoftware/inventory/internal/user/http"
	userRepository "github.com/lsoftware/inventory/internal/user/repository"
	userUseCase "github.com/lsoftware/inventory/internal/user/usecase"
)

// UserRepository returns the user repository for the configured driver.
// It also serves as the credential store of the authenticator.
func (c *Container) UserRepository() (userUseCase.UserRepository, error) {
	var err error
	c.userRepositoryInit.Do(func() {
		c.userRepository, err = c.initUserRepository()
		if err != nil {
			c.setInitError("userRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("userRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.userRepository, nil
}

// RoleRepository returns the role repository for the configured driver.
func (c *Container) RoleRepository() (userUseCase.RoleRepository, error) {
	var err error
	c.roleRepositoryInit.Do(func() {
		c.roleRepository, err = c.initRoleRepository()
		if err != nil {
			c.setInitError("roleRepository", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("roleRepository"); storedErr != nil {
		return nil, storedErr
	}
	return c.roleRepository, nil
}

// UserUseCase returns the user use case, wrapped with metrics when enabled.
func (c *Container) UserUseCase() (userUseCase.UserUseCase, error) {
	var err error
	c.userUseCaseInit.Do(func() {
		c.userUseCase, err = c.initUserUseCase()
		if err != nil {
			c.setInitError("userUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("userUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.userUseCase, nil
}

// RoleUseCase returns the role use case, wrapped with metrics when enabled.
func (c *Container) RoleUseCase() (userUseCase.RoleUseCase, error) {
	var err error
	c.roleUseCaseInit.Do(func() {
		c.roleUseCase, err = c.initRoleUseCase()
		if err != nil {
			c.setInitError("roleUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("roleUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.roleUseCase, nil
}

// UserHandler returns the HTTP handler for user management.
func (c *Container) UserHandler() (*userHTTP.UserHandler, error) {
	var err error
	c.userHandlerInit.Do(func() {
		var useCase userUseCase.UserUseCase
		useCase, err = c.UserUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get user use case for user handler: %w", err)
			c.setInitError("userHandler", err)
			return
		}
		c.userHandler = userHTTP.NewUserHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("userHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.userHandler, nil
}

// RoleHandler returns the HTTP handler for role management.
func (c *Container) RoleHandler() (*userHTTP.RoleHandler, error) {
	var err error
	c.roleHandlerInit.Do(func() {
		var useCase userUseCase.RoleUseCase
		useCase, err = c.RoleUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get role use case for role handler: %w", err)
			c.setInitError("roleHandler", err)
			return
		}
		c.roleHandler = userHTTP.NewRoleHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("roleHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.roleHandler, nil
}

func (c *Container) initUserRepository() (userUseCase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return userRepository.NewMySQLUserRepository(db), nil
	case database.DriverPostgres:
		return userRepository.NewPostgreSQLUserRepository(db), nil
	default:
		return nil, database.CheckDriver(c.config.DBDriver)
	}
}

func (c *Container) initRoleRepository() (userUseCase.RoleRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for role repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return userRepository.NewMySQLRoleRepository(db), nil
	case database.DriverPostgres:
		return userRepository.NewPostgreSQLRoleRepository(db), nil
	default:
		return nil, database.CheckDriver(c.config.DBDriver)
	}
}

func (c *Container) initUserUseCase() (userUseCase.UserUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for user use case: %w", err)
	}

	users, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}

	roles, err := c.RoleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get role repository for user use case: %w", err)
	}

	passwordService, err := c.PasswordService()
	if err != nil {
		return nil, fmt.Errorf("failed to get password service for user use case: %w", err)
	}

	baseUseCase := userUseCase.NewUserUseCase(txManager, users, roles, passwordService)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for user use case: %w", err)
		}
		return userUseCase.NewUserUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initRoleUseCase() (userUseCase.RoleUseCase, error) {
	roles, err := c.RoleRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get role repository for role use case: %w", err)
	}

	baseUseCase := userUseCase.NewRoleUseCase(roles)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for role use case: %w", err)
		}
		return userUseCase.NewRoleUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
