package chunkcodec

import (
	"github.com/pierrec/lz4/v4"
)

func init() {
	Register(lz4Decoder{})
}

// lz4Decoder backs licensee forks that patch LZ4 in as a chunk codec in
// place of UE's native zlib. Follows the same Decoder interface as the
// other backends; the pack's bureau-foundation-bureau repo pulls in
// pierrec/lz4/v4 as its LZ4 implementation, which this backend reuses.
type lz4Decoder struct{}

func (lz4Decoder) Name() string { return "lz4" }

func (lz4Decoder) Decode(dst, compressed []byte) (int, error) {
	return lz4.UncompressBlock(compressed, dst)
}

// EncodeLZ4 compresses src into a single LZ4 block.
func EncodeLZ4(src []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	var c lz4.Compressor
	n, err := c.CompressBlock(src, dst)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}
