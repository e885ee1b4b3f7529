package cli

import (
	"context"
	"os"

	"github.com/Vinamra-Agarwal/CareChain/internal/chain"
	"github.com/Vinamra-Agarwal/CareChain/internal/node"

	"github.com/urfave/cli/v3"
)

// NodeFactory builds the node served by the start command. It is called only
// when that command runs, so commands that do not need the message bus never
// connect to it.
type NodeFactory func(ctx context.Context) (node.Service, error)

// Run builds the carechain command tree and executes it with os.Args.
//
//   - `start`: runs the node until SIGINT or SIGTERM.
//   - `demo`: plays a submission and mining round on c and prints the results.
func Run(ctx context.Context, c chain.Service, newNode NodeFactory) error {
	return newApp(c, newNode).Run(ctx, os.Args)
}

func newApp(c chain.Service, newNode NodeFactory) *cli.Command {
	return &cli.Command{
		EnableShellCompletion: true,
		Name:                  "carechain",
		Description:           "Permissioned healthcare data-provenance ledger node.",
		Usage:                 "carechain [command] [flags]",
		Writer:                os.Stdout,
		Commands: []*cli.Command{
			startNodeCommand(newNode),
			demoCommand(c),
		},
	}
}
