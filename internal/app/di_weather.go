package app

import (
	"fmt"

	weatherHTTP "github.com/allisson/weathervane/internal/weather/http"
	weatherRepository "github.com/allisson/weathervane/internal/weather/repository"
	weatherService "github.com/allisson/weathervane/internal/weather/service"
	weatherUsecase "github.com/allisson/weathervane/internal/weather/usecase"
)

// WeatherProvider returns the upstream weather data provider client.
func (c *Container) WeatherProvider() (weatherService.Provider, error) {
	var err error
	c.weatherProviderInit.Do(func() {
		c.weatherProvider, err = c.initWeatherProvider()
		if err != nil {
			c.initErrors["weatherProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["weatherProvider"]; exists {
		return nil, storedErr
	}
	return c.weatherProvider, nil
}

// WeatherReadingRepository returns the weather reading repository based on database driver.
func (c *Container) WeatherReadingRepository() (weatherUsecase.WeatherReadingRepository, error) {
	var err error
	c.weatherRepoInit.Do(func() {
		c.weatherRepo, err = c.initWeatherReadingRepository()
		if err != nil {
			c.initErrors["weatherRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["weatherRepo"]; exists {
		return nil, storedErr
	}
	return c.weatherRepo, nil
}

// WeatherUseCase returns the weather read and polling use case.
func (c *Container) WeatherUseCase() (weatherUsecase.WeatherUseCase, error) {
	var err error
	c.weatherUseCaseInit.Do(func() {
		c.weatherUseCase, err = c.initWeatherUseCase()
		if err != nil {
			c.initErrors["weatherUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["weatherUseCase"]; exists {
		return nil, storedErr
	}
	return c.weatherUseCase, nil
}

// WeatherHandler returns the HTTP handler for weather read operations.
func (c *Container) WeatherHandler() (*weatherHTTP.WeatherHandler, error) {
	var err error
	c.weatherHandlerInit.Do(func() {
		c.weatherHandler, err = c.initWeatherHandler()
		if err != nil {
			c.initErrors["weatherHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["weatherHandler"]; exists {
		return nil, storedErr
	}
	return c.weatherHandler, nil
}

// initWeatherProvider creates the upstream provider client.
func (c *Container) initWeatherProvider() (weatherService.Provider, error) {
	provider, err := weatherService.NewOpenWeatherProvider(weatherService.OpenWeatherConfig{
		BaseURL:        c.config.WeatherProviderBaseURL,
		APIKey:         c.config.WeatherProviderAPIKey,
		Timeout:        c.config.WeatherProviderTimeout,
		RequestsPerSec: c.config.WeatherProviderRequestsPerSec,
		Burst:          c.config.WeatherProviderBurst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create weather provider: %w", err)
	}
	return provider, nil
}

// initWeatherReadingRepository creates the weather reading repository based on the database driver.
func (c *Container) initWeatherReadingRepository() (weatherUsecase.WeatherReadingRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for weather repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return weatherRepository.NewPostgreSQLWeatherRepository(db), nil
	case "mysql":
		return weatherRepository.NewMySQLWeatherRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initWeatherUseCase creates the weather use case with all its dependencies.
func (c *Container) initWeatherUseCase() (weatherUsecase.WeatherUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for weather use case: %w", err)
	}

	weatherRepo, err := c.WeatherReadingRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get weather repository for weather use case: %w", err)
	}

	subscriptionRepo, err := c.SubscriptionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription repository for weather use case: %w", err)
	}

	outboxRepo, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for weather use case: %w", err)
	}

	provider, err := c.WeatherProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get weather provider for weather use case: %w", err)
	}

	useCaseConfig := weatherUsecase.Config{
		Freshness:       c.config.WeatherFreshness,
		PollConcurrency: c.config.PollConcurrency,
	}

	baseUseCase := weatherUsecase.NewWeatherUseCase(
		txManager,
		weatherRepo,
		subscriptionRepo,
		outboxRepo,
		provider,
		useCaseConfig,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for weather use case: %w", err)
		}
		return weatherUsecase.NewWeatherUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initWeatherHandler creates the weather HTTP handler with all its dependencies.
func (c *Container) initWeatherHandler() (*weatherHTTP.WeatherHandler, error) {
	weatherUC, err := c.WeatherUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get weather use case for weather handler: %w", err)
	}

	logger := c.Logger()

	return weatherHTTP.NewWeatherHandler(weatherUC, logger), nil
}
