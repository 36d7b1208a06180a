package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/elephantasm/elephantasm-go/pkg/client"
	"github.com/elephantasm/elephantasm-go/pkg/model"
)

func chatCommand() *cli.Command {
	var (
		cfg  config
		role string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "role",
			Usage:       "Role recorded for typed messages",
			Value:       "user",
			Destination: &role,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "chat",
		Usage: "Interactive session: each line is recorded as a message.in event",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg.setup()

			cl, err := cfg.newClient()
			if err != nil {
				return err
			}
			defer cl.Close()

			sessionID := uuid.New().String()
			w := c.Root().Writer

			if err := printPack(ctx, cl, w); err != nil {
				return err
			}

			rl, err := readline.New("> ")
			if err != nil {
				return goerr.Wrap(err, "failed to initialize readline")
			}
			defer rl.Close()

			fmt.Fprintf(w, "Recording to session %s. Commands: /inject, /exit\n", sessionID)

			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return goerr.Wrap(err, "failed to read input")
				}

				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}

				switch line {
				case "/exit", "/quit":
					return nil
				case "/inject":
					if err := printPack(ctx, cl, w); err != nil {
						return err
					}
					continue
				}

				sp := newSpinner("recording...")
				sp.Start()
				_, err = cl.Extract(ctx, client.ExtractInput{
					EventType: model.EventTypeMessageIn,
					Content:   line,
					Role:      role,
					SessionID: sessionID,
				})
				sp.Stop()
				if err != nil {
					return goerr.Wrap(err, "failed to record message")
				}
			}

			fmt.Fprintln(w, "session ended")
			return nil
		},
	}
}

func printPack(ctx context.Context, cl *client.Client, w io.Writer) error {
	sp := newSpinner("fetching memory pack...")
	sp.Start()
	pack, err := cl.Inject(ctx, client.InjectInput{})
	sp.Stop()
	if err != nil {
		return goerr.Wrap(err, "failed to fetch memory pack")
	}

	if pack == nil {
		fmt.Fprintln(w, "(no memory pack compiled yet)")
		return nil
	}
	fmt.Fprintln(w, pack.AsPrompt())
	return nil
}
