package chunkcodec

import (
	"github.com/klauspost/compress/zstd"
)

func init() {
	Register(zstdKlauspostDecoder{})
}

// zstdKlauspostDecoder is an alternate pure-Go zstd backend, grounded on
// the teacher's root main.go (its klauspost/compress/zstd encoder/decoder
// globals), kept as a second zstd implementation for environments where
// cgo (DataDog/zstd) is unavailable.
type zstdKlauspostDecoder struct{}

func (zstdKlauspostDecoder) Name() string { return "zstd-klauspost" }

func (zstdKlauspostDecoder) Decode(dst, compressed []byte) (int, error) {
	d, err := zstd.NewReader(nil)
	if err != nil {
		return 0, err
	}
	defer d.Close()
	out, err := d.DecodeAll(compressed, nil)
	if err != nil {
		return 0, err
	}
	return copy(dst, out), nil
}

// EncodeZstdKlauspost compresses src with the klauspost backend.
func EncodeZstdKlauspost(src []byte, level zstd.EncoderLevel) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(src, nil), nil
}
