package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goopsie/upkfile/pkg/upk"
)

var exportsCmd = &cobra.Command{
	Use:   "exports <file>",
	Short: "List the Export table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg, err := loadPackage(args[0], 0)
		if err != nil {
			return err
		}
		for i, exp := range pkg.Exports {
			idx := upk.PackageIndex(i + 1)
			obj, err := pkg.ResolveIndex(idx)
			if err != nil {
				fmt.Printf("%6d  <resolve error: %v>\n", idx, err)
				continue
			}
			fmt.Printf("%6d  %-40s %-24s serial=%d@%d\n", idx, obj.Name, obj.Class, exp.SerialSize, exp.SerialOffset)
		}
		return nil
	},
}
