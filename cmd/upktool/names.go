package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var namesCmd = &cobra.Command{
	Use:   "names <file>",
	Short: "List the Name table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg, err := loadPackage(args[0], 0)
		if err != nil {
			return err
		}
		for i, n := range pkg.Names {
			fmt.Printf("%6d  %s\n", i, n.Name)
		}
		return nil
	},
}
