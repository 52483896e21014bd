package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/HoloTheDrunk/eray/shadergraph"
	"github.com/HoloTheDrunk/eray/shaderlib"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.eray>",
	Short: "Parse, resolve, and validate a shader graph file",
	Long:  "Parse an .eray file, resolve it against the builtin node library and any custom node directory, and run whole-graph validation. Prints every diagnostic found.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	verbose := viper.GetBool("verbose")
	nodesDir := viper.GetString("nodes")

	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading shader file: %w", err)
	}

	reg := shadergraph.NewRegistry(shaderlib.NewDirLoader(nodesDir))

	graph, err := shadergraph.Build(src, reg)
	if err != nil {
		var be *shadergraph.BuildError
		if errors.As(err, &be) {
			for _, d := range be.Diagnostics {
				fmt.Fprintln(os.Stderr, d)
			}
			return fmt.Errorf("%s: %d diagnostic(s)", args[0], len(be.Diagnostics))
		}
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Signature: %s\n", graph.Signature)
		fmt.Fprintf(os.Stderr, "Nodes:     %d\n", len(graph.Nodes))
		fmt.Fprintf(os.Stderr, "Links:     %d\n", len(graph.Links))
		fmt.Fprintf(os.Stderr, "Graph ID:  %s\n", graph.ID)
	}

	fmt.Fprintf(os.Stderr, "%s: ok\n", args[0])
	return nil
}
