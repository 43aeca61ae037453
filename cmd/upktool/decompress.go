package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goopsie/upkfile/pkg/chunkcodec"
)

var flagCodec string

var decompressCmd = &cobra.Command{
	Use:   "decompress <file> <output>",
	Short: "Decode a package's Compressed Chunks and write the reassembled body",
	Long: `Compressed Chunks are never decoded by Load itself (§7 Design Notes):
this command is the explicit decode step, reading each chunk's compressed
bytes straight from the source file and handing them to the codec named by
--codec.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, out := args[0], args[1]

		pkg, err := loadPackage(in, 0)
		if err != nil {
			return err
		}
		if len(pkg.Summary.CompressedChunks) == 0 {
			return fmt.Errorf("decompress: %s has no Compressed Chunks", in)
		}

		src, err := os.Open(in)
		if err != nil {
			return err
		}
		defer src.Close()

		dst, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer dst.Close()

		for i, chunk := range pkg.Summary.CompressedChunks {
			compressed := make([]byte, chunk.CompressedSize)
			if _, err := src.Seek(int64(chunk.CompressedOffset), io.SeekStart); err != nil {
				return err
			}
			if _, err := io.ReadFull(src, compressed); err != nil {
				return fmt.Errorf("read chunk %d: %w", i, err)
			}
			decoded, err := chunkcodec.Decode(flagCodec, compressed, int(chunk.UncompressedSize))
			if err != nil {
				return fmt.Errorf("decode chunk %d: %w", i, err)
			}
			if _, err := dst.Write(decoded); err != nil {
				return err
			}
		}

		fmt.Printf("Decoded %d chunk(s) with codec %q into %s\n", len(pkg.Summary.CompressedChunks), flagCodec, out)
		return nil
	},
}

func init() {
	decompressCmd.Flags().StringVar(&flagCodec, "codec", "zlib", "chunk codec: "+fmt.Sprint(chunkcodec.Names()))
}
