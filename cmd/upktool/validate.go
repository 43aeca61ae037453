package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check the Summary's header-size/table-offset invariant and report aggregated deserialize failures",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg, err := loadPackage(args[0], allPhases())
		if err != nil {
			return err
		}
		if verr := pkg.Summary.Validate(); verr != nil {
			fmt.Printf("INVALID: %v\n", verr)
			return verr
		}
		fmt.Println("OK: header invariant holds")
		if len(pkg.Diagnostics.Diagnostics) > 0 {
			fmt.Printf("%d non-fatal table diagnostic(s) recorded (rerun with -v to list)\n", len(pkg.Diagnostics.Diagnostics))
		}
		return nil
	},
}
