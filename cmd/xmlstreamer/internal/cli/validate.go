package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wilkmaciej/xml-streamer/xmlcore"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that the document is well-formed",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readAllInput()
			if err != nil {
				return err
			}
			r := newEntityReader(data)
			for {
				ev, err := r.Read()
				if err != nil {
					return err
				}
				if ev.Kind == xmlcore.EventEOF {
					break
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
