package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goopsie/upkfile/pkg/upk"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print the Summary header and table sizes for a package file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg, err := loadPackage(args[0], upk.RegisterClasses)
		if err != nil {
			return err
		}
		sum := pkg.Summary

		fmt.Printf("Branch:           %s\n", pkg.Branch.Key())
		fmt.Printf("Version:          %d (licensee %d)\n", sum.Version, sum.LicenseeVersion)
		if sum.IsUE4() {
			fmt.Printf("UE4 file version: %d (licensee %d, legacy %d)\n", sum.UE4FileVersion, sum.UE4LicenseeVersion, sum.LegacyVersion)
		}
		fmt.Printf("Folder name:      %s\n", sum.FolderName)
		fmt.Printf("Header size:      %d\n", sum.HeaderSize)
		fmt.Printf("Names:            %d (offset %d)\n", sum.NameCount, sum.NameOffset)
		fmt.Printf("Imports:          %d (offset %d)\n", sum.ImportCount, sum.ImportOffset)
		fmt.Printf("Exports:          %d (offset %d)\n", sum.ExportCount, sum.ExportOffset)
		if sum.DependsOffset > 0 {
			fmt.Printf("Depends offset:   %d\n", sum.DependsOffset)
		}
		if sum.ThumbnailTableOffset > 0 {
			fmt.Printf("Thumbnails offset: %d\n", sum.ThumbnailTableOffset)
		}
		if len(sum.CompressedChunks) > 0 {
			fmt.Printf("Compressed chunks: %d (flags 0x%x)\n", len(sum.CompressedChunks), sum.CompressionFlags)
		}
		if len(sum.Generations) > 0 {
			fmt.Printf("Generations:      %d\n", len(sum.Generations))
		}
		return nil
	},
}
