package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/elephantasm/elephantasm-go/pkg/model"
)

func animaCommand() *cli.Command {
	return &cli.Command{
		Name:  "anima",
		Usage: "Manage animas (agent entities)",
		Commands: []*cli.Command{
			animaNewCommand(),
		},
	}
}

func animaNewCommand() *cli.Command {
	var (
		cfg         config
		name        string
		description string
		metaJSON    string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "name",
			Aliases:     []string{"n"},
			Usage:       "Human-readable name for the anima",
			Required:    true,
			Destination: &name,
		},
		&cli.StringFlag{
			Name:        "description",
			Aliases:     []string{"d"},
			Usage:       "Description of the anima",
			Destination: &description,
		},
		&cli.StringFlag{
			Name:        "meta",
			Usage:       "Metadata as a JSON object",
			Destination: &metaJSON,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "new",
		Usage: "Create a new anima",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg.setup()

			var meta map[string]any
			if metaJSON != "" {
				if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
					return goerr.Wrap(err, "failed to parse --meta as JSON object")
				}
			}

			cl, err := cfg.newClient()
			if err != nil {
				return err
			}
			defer cl.Close()

			anima, err := cl.CreateAnima(ctx, model.AnimaCreate{
				Name:        name,
				Description: description,
				Meta:        meta,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to create anima")
			}

			fmt.Fprintf(c.Root().Writer, "%s\t%s\n", anima.ID, anima.Name)
			return nil
		},
	}
}
