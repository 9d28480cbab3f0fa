package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wilkmaciej/xml-streamer/xmldom"
)

func newToJSONCmd() *cobra.Command {
	var indent bool
	cmd := &cobra.Command{
		Use:   "to-json",
		Short: "Convert the document's DOM tree to JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readAllInput()
			if err != nil {
				return err
			}
			r := newEntityReader(data)
			root, err := xmldom.Build(r)
			if err != nil {
				return err
			}
			tree := elementToJSON(root)
			var out []byte
			if indent {
				out, err = json.MarshalIndent(tree, "", "  ")
			} else {
				out, err = json.Marshal(tree)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&indent, "indent", false, "pretty-print the JSON output")
	return cmd
}

// jsonNode is the generic shape an Element tree converts to: an
// element's own attributes become a flat map keyed "@name", child
// elements group under their local name (a slice once more than one
// sibling shares it), and any direct text becomes "#text".
type jsonNode map[string]any

func elementToJSON(el *xmldom.Element) jsonNode {
	node := jsonNode{}
	for _, a := range el.Attributes {
		node["@"+a.Name] = a.Value
	}

	childElements := map[string][]any{}
	var text string
	for _, c := range el.Children {
		switch n := c.(type) {
		case *xmldom.Element:
			childElements[n.LocalName] = append(childElements[n.LocalName], elementToJSON(n))
		case *xmldom.Text:
			text += n.Value
		case *xmldom.Space:
			text += n.Value
		}
	}
	for name, vals := range childElements {
		if len(vals) == 1 {
			node[name] = vals[0]
		} else {
			node[name] = vals
		}
	}
	if text != "" {
		node["#text"] = text
	}
	return node
}
