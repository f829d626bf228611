package app

import (
	"context"
	"fmt"

	authHTTP "github.com/allisson/weathervane/internal/auth/http"
	authRepository "github.com/allisson/weathervane/internal/auth/repository"
	authService "github.com/allisson/weathervane/internal/auth/service"
	authUseCase "github.com/allisson/weathervane/internal/auth/usecase"
)

// IdentityVerifier returns the OIDC identity token verifier.
// Provider discovery runs once on first access.
func (c *Container) IdentityVerifier() (authService.IdentityVerifier, error) {
	var err error
	c.identityVerifierInit.Do(func() {
		c.identityVerifier, err = c.initIdentityVerifier()
		if err != nil {
			c.initErrors["identityVerifier"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["identityVerifier"]; exists {
		return nil, storedErr
	}
	return c.identityVerifier, nil
}

// TokenService returns the API token generation and hashing service.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService()
	})
	return c.tokenService
}

// ApiTokenRepository returns the API token repository based on database driver.
func (c *Container) ApiTokenRepository() (authUseCase.ApiTokenRepository, error) {
	var err error
	c.apiTokenRepoInit.Do(func() {
		c.apiTokenRepo, err = c.initApiTokenRepository()
		if err != nil {
			c.initErrors["apiTokenRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["apiTokenRepo"]; exists {
		return nil, storedErr
	}
	return c.apiTokenRepo, nil
}

// TokenUseCase returns the API token lifecycle use case.
func (c *Container) TokenUseCase() (authUseCase.TokenUseCase, error) {
	var err error
	c.tokenUseCaseInit.Do(func() {
		c.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.initErrors["tokenUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenUseCase"]; exists {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// AuthenticationUseCase returns the credential authentication use case.
func (c *Container) AuthenticationUseCase() (authUseCase.AuthenticationUseCase, error) {
	var err error
	c.authenticationUseCaseInit.Do(func() {
		c.authenticationUseCase, err = c.initAuthenticationUseCase()
		if err != nil {
			c.initErrors["authenticationUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authenticationUseCase"]; exists {
		return nil, storedErr
	}
	return c.authenticationUseCase, nil
}

// TokenHandler returns the HTTP handler for API token operations.
func (c *Container) TokenHandler() (*authHTTP.TokenHandler, error) {
	var err error
	c.tokenHandlerInit.Do(func() {
		c.tokenHandler, err = c.initTokenHandler()
		if err != nil {
			c.initErrors["tokenHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenHandler"]; exists {
		return nil, storedErr
	}
	return c.tokenHandler, nil
}

// initIdentityVerifier creates the OIDC verifier, running provider discovery
// against the configured issuer.
func (c *Container) initIdentityVerifier() (authService.IdentityVerifier, error) {
	verifier, err := authService.NewIdentityVerifier(
		context.Background(),
		c.config.OIDCIssuerURL,
		c.config.OIDCClientID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity verifier: %w", err)
	}
	return verifier, nil
}

// initApiTokenRepository creates the API token repository based on the database driver.
func (c *Container) initApiTokenRepository() (authUseCase.ApiTokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for api token repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authRepository.NewPostgreSQLApiTokenRepository(db), nil
	case "mysql":
		return authRepository.NewMySQLApiTokenRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTokenUseCase creates the token use case with all its dependencies.
func (c *Container) initTokenUseCase() (authUseCase.TokenUseCase, error) {
	apiTokenRepo, err := c.ApiTokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get api token repository for token use case: %w", err)
	}

	tokenService := c.TokenService()

	baseUseCase := authUseCase.NewTokenUseCase(apiTokenRepo, tokenService)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
		}
		return authUseCase.NewTokenUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initAuthenticationUseCase creates the authentication use case with all its dependencies.
func (c *Container) initAuthenticationUseCase() (authUseCase.AuthenticationUseCase, error) {
	apiTokenRepo, err := c.ApiTokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get api token repository for authentication use case: %w", err)
	}

	identityVerifier, err := c.IdentityVerifier()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity verifier for authentication use case: %w", err)
	}

	tokenService := c.TokenService()
	logger := c.Logger()

	baseUseCase := authUseCase.NewAuthenticationUseCase(apiTokenRepo, tokenService, identityVerifier, logger)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for authentication use case: %w", err)
		}
		return authUseCase.NewAuthenticationUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initTokenHandler creates the token HTTP handler with all its dependencies.
func (c *Container) initTokenHandler() (*authHTTP.TokenHandler, error) {
	tokenUseCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for token handler: %w", err)
	}

	logger := c.Logger()

	return authHTTP.NewTokenHandler(tokenUseCase, logger), nil
}
