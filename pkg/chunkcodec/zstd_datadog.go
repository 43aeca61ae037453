package chunkcodec

import "github.com/DataDog/zstd"

func init() {
	Register(zstdDataDogDecoder{})
}

// zstdDataDogDecoder backs UE5-era / licensee packages that repurpose
// zstd framing for chunk compression. Grounded directly on the teacher's
// pkg/archive, which wraps DataDog/zstd for its own compressed container
// format.
type zstdDataDogDecoder struct{}

func (zstdDataDogDecoder) Name() string { return "zstd-datadog" }

func (zstdDataDogDecoder) Decode(dst, compressed []byte) (int, error) {
	out, err := zstd.Decompress(nil, compressed)
	if err != nil {
		return 0, err
	}
	return copy(dst, out), nil
}

// EncodeZstdDataDog compresses src at the given level.
func EncodeZstdDataDog(src []byte, level int) ([]byte, error) {
	return zstd.CompressLevel(nil, src, level)
}
