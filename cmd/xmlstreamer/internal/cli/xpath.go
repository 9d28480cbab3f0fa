package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wilkmaciej/xpath"

	"github.com/wilkmaciej/xml-streamer/xmldom"
)

func newXPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "xpath <expr>",
		Short: "Evaluate an XPath expression against the document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := xpath.Compile(args[0])
			if err != nil {
				return fmt.Errorf("compiling expression: %w", err)
			}
			data, err := readAllInput()
			if err != nil {
				return err
			}
			root, err := xmldom.Build(newEntityReader(data))
			if err != nil {
				return err
			}

			result := root.Evaluate(expr)
			out := cmd.OutOrStdout()
			nodes, ok := result.([]any)
			if !ok {
				fmt.Fprintln(out, result)
				return nil
			}
			for _, n := range nodes {
				switch v := n.(type) {
				case *xmldom.Element:
					fmt.Fprintln(out, v.InnerText())
				case *xmldom.Text:
					fmt.Fprintln(out, v.Value)
				case *xmldom.Space:
					fmt.Fprintln(out, v.Value)
				case *xmldom.Attribute:
					fmt.Fprintln(out, v.Value)
				default:
					fmt.Fprintln(out, v)
				}
			}
			return nil
		},
	}
}
