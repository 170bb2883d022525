package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ruminaider/selectme/internal/native"
	"github.com/ruminaider/selectme/internal/optiontree"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check <source>",
	Short: "Report the structure of a source document and any skipped entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		form, err := native.Load(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		skipped := 0
		for _, sel := range form.Selects {
			tree, diags := optiontree.Parse(sel.Children)
			mode := "single"
			if sel.Multiple {
				mode = "multiple"
			}
			fmt.Fprintf(out, "%s (%s): %d options, %d groups, %d selected\n",
				sel.Name, mode, tree.OptionCount(), tree.Len()-tree.OptionCount(), len(tree.Selected()))
			for _, d := range diags {
				fmt.Fprintf(out, "  %s\n", d)
			}
			skipped += len(diags)
		}

		if checkStrict && skipped > 0 {
			return fmt.Errorf("%d entries skipped", skipped)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Fail when any entry is skipped")
}
