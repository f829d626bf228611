package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/weathervane/cmd/app/commands"
	"github.com/allisson/weathervane/internal/app"
	"github.com/allisson/weathervane/internal/config"
)

func getWeatherCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "poll-weather",
			Usage: "Fetch current weather for every subscribed location once",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				weatherUseCase, err := container.WeatherUseCase()
				if err != nil {
					return err
				}

				return commands.RunPollWeather(
					ctx,
					weatherUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
