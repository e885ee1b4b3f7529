package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// startNodeCommand runs the node until an interrupt or termination signal
// arrives.
//
//	carechain start
func startNodeCommand(newNode NodeFactory) *cli.Command {
	return &cli.Command{
		Name:        "start",
		Description: "Starts the ledger node and serves the blockchain layer of the message bus.",
		Usage:       "Runs the node. Terminates gracefully on Ctrl+C or termination signals.",
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			n, err := newNode(ctx)
			if err != nil {
				return err
			}

			if err := n.Start(ctx); err != nil {
				return err
			}
			defer n.Close()

			<-ctx.Done()
			return nil
		},
	}
}
