package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ruminaider/selectme/internal/native"
)

var valuesCmd = &cobra.Command{
	Use:   "values <source>",
	Short: "Print the form values a source document submits as is",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		form, err := native.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), form.Values().Encode())
		return nil
	},
}
