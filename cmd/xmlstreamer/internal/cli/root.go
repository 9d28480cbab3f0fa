// Package cli wires the xmlstreamer command tree together with cobra,
// the same command-building shape a larger cobra-based CLI (such as
// cuelang.org/go's cmd/cue) uses: one root command, one file per leaf
// subcommand, shared --file flag plumbing in this file.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

var inputPath string

// Execute builds and runs the root command.
func Execute() error {
	root := newRootCmd()
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "xmlstreamer",
		Short:         "Inspect and query XML documents with the xmlstreamer engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&inputPath, "file", "f", "", "input file (defaults to stdin)")

	root.AddCommand(newValidateCmd())
	root.AddCommand(newDumpEventsCmd())
	root.AddCommand(newToJSONCmd())
	root.AddCommand(newXPathCmd())
	return root
}

// openInput returns the configured --file, or stdin if unset.
func openInput() (io.ReadCloser, error) {
	if inputPath == "" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(inputPath)
}

func readAllInput() ([]byte, error) {
	f, err := openInput()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
