package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip <file> <output>",
	Short: "Load a package and write it back out, exercising Save's offset/HeaderSize recomputation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, out := args[0], args[1]
		pkg, err := loadPackage(in, 0)
		if err != nil {
			return err
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()

		if err := pkg.Save(f); err != nil {
			return fmt.Errorf("save %s: %w", out, err)
		}

		info, err := f.Stat()
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d bytes, header size %d)\n", out, info.Size(), pkg.Summary.HeaderSize)
		return nil
	},
}
