package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goopsie/upkfile/pkg/upk"
)

var importsCmd = &cobra.Command{
	Use:   "imports <file>",
	Short: "List the Import table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg, err := loadPackage(args[0], 0)
		if err != nil {
			return err
		}
		for i := range pkg.Imports {
			idx := upk.PackageIndex(-(int32(i) + 1))
			obj, err := pkg.ResolveIndex(idx)
			if err != nil {
				fmt.Printf("%6d  <resolve error: %v>\n", idx, err)
				continue
			}
			fmt.Printf("%6d  %s (%s)\n", idx, obj.Name, obj.Class)
		}
		return nil
	},
}
