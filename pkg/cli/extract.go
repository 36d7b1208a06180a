package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/elephantasm/elephantasm-go/pkg/client"
	"github.com/elephantasm/elephantasm-go/pkg/model"
)

func extractCommand() *cli.Command {
	var (
		cfg        config
		role       string
		author     string
		sessionID  string
		metaJSON   string
		importance float64
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "role",
			Usage:       "Message role (user, assistant, system, tool)",
			Destination: &role,
		},
		&cli.StringFlag{
			Name:        "author",
			Usage:       "Author identifier (username, model name, tool name)",
			Destination: &author,
		},
		&cli.StringFlag{
			Name:        "session-id",
			Aliases:     []string{"s"},
			Usage:       "Session identifier for grouping events",
			Destination: &sessionID,
		},
		&cli.StringFlag{
			Name:        "meta",
			Usage:       "Metadata as a JSON object",
			Destination: &metaJSON,
		},
		&cli.FloatFlag{
			Name:        "importance",
			Usage:       "Importance score between 0.0 and 1.0",
			Destination: &importance,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:      "extract",
		Usage:     "Capture an event for memory synthesis",
		ArgsUsage: "<event-type> <content>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg.setup()

			if c.Args().Len() < 2 {
				return goerr.New("usage: extract <event-type> <content>")
			}
			eventType := c.Args().Get(0)
			content := c.Args().Get(1)

			var meta map[string]any
			if metaJSON != "" {
				if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
					return goerr.Wrap(err, "failed to parse --meta as JSON object")
				}
			}

			var score *float64
			if c.IsSet("importance") {
				score = &importance
			}

			cl, err := cfg.newClient()
			if err != nil {
				return err
			}
			defer cl.Close()

			sp := newSpinner("recording event...")
			sp.Start()
			event, err := cl.Extract(ctx, client.ExtractInput{
				EventType:       model.EventType(eventType),
				Content:         content,
				Role:            role,
				Author:          author,
				SessionID:       sessionID,
				Meta:            meta,
				ImportanceScore: score,
			})
			sp.Stop()
			if err != nil {
				return goerr.Wrap(err, "failed to record event")
			}

			fmt.Fprintf(c.Root().Writer, "%s\t%s\n", event.ID, event.EventType)
			return nil
		},
	}
}
