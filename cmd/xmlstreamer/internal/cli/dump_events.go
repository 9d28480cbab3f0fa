package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wilkmaciej/xml-streamer/xmlcore"
)

func newDumpEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump-events",
		Short: "Print every parse event as one line",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readAllInput()
			if err != nil {
				return err
			}
			r := newEntityReader(data)
			out := cmd.OutOrStdout()
			for {
				ev, err := r.Read()
				if err != nil {
					return err
				}
				if ev.Kind == xmlcore.EventEOF {
					return nil
				}
				printEvent(out, ev)
			}
		},
	}
}

func printEvent(out interface{ Write([]byte) (int, error) }, ev xmlcore.Event) {
	switch ev.Kind {
	case xmlcore.EventStart:
		fmt.Fprintf(out, "START %s\n", ev.Start().Name().Full())
	case xmlcore.EventEmpty:
		fmt.Fprintf(out, "EMPTY %s\n", ev.Start().Name().Full())
	case xmlcore.EventEnd:
		fmt.Fprintln(out, "END")
	case xmlcore.EventText:
		fmt.Fprintf(out, "TEXT %q\n", ev.Content)
	case xmlcore.EventCData:
		fmt.Fprintf(out, "CDATA %q\n", ev.Content)
	case xmlcore.EventComment:
		fmt.Fprintf(out, "COMMENT %q\n", ev.Content)
	case xmlcore.EventPI:
		fmt.Fprintf(out, "PI %s %q\n", ev.PI().Target(), ev.PI().Content())
	case xmlcore.EventDecl:
		fmt.Fprintf(out, "DECL version=%s\n", ev.Decl().Version())
	case xmlcore.EventDocType:
		fmt.Fprintf(out, "DOCTYPE %q\n", ev.Content)
	case xmlcore.EventGeneralRef:
		fmt.Fprintf(out, "GENERALREF %q\n", ev.Content)
	}
}
