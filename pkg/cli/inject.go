package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/elephantasm/elephantasm-go/pkg/client"
)

// newSpinner builds a progress indicator writing to stderr so piped stdout
// stays clean.
func newSpinner(suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + suffix
	return s
}

func injectCommand() *cli.Command {
	var (
		cfg    config
		query  string
		preset string
		asJSON bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "query",
			Aliases:     []string{"q"},
			Usage:       "Query for semantic retrieval",
			Destination: &query,
		},
		&cli.StringFlag{
			Name:        "preset",
			Aliases:     []string{"p"},
			Usage:       "Preset name (conversational, self_determined)",
			Destination: &preset,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the full memory pack as JSON instead of the prompt text",
			Destination: &asJSON,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "inject",
		Usage: "Fetch the latest memory pack for prompt injection",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg.setup()

			cl, err := cfg.newClient()
			if err != nil {
				return err
			}
			defer cl.Close()

			sp := newSpinner("fetching memory pack...")
			sp.Start()
			pack, err := cl.Inject(ctx, client.InjectInput{
				Query:  query,
				Preset: preset,
			})
			sp.Stop()
			if err != nil {
				return goerr.Wrap(err, "failed to fetch memory pack")
			}

			if pack == nil {
				fmt.Fprintln(os.Stderr, "no memory pack compiled yet")
				return nil
			}

			if asJSON {
				data, err := json.MarshalIndent(pack, "", "  ")
				if err != nil {
					return goerr.Wrap(err, "failed to marshal memory pack")
				}
				fmt.Fprintf(c.Root().Writer, "%s\n", data)
				return nil
			}

			fmt.Fprintln(c.Root().Writer, pack.AsPrompt())
			return nil
		},
	}
}
