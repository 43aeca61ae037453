// Package texmeta is an example per-class object deserializer: a
// fixed-size (256 byte) texture descriptor, registered against the
// placeholder class name "TextureMetadata" to demonstrate the
// branch.ObjectSerializerFunc plug-in point (§6).
package texmeta

import (
	"fmt"

	"github.com/goopsie/upkfile/internal/classreg"
	"github.com/goopsie/upkfile/pkg/branch"
	"github.com/goopsie/upkfile/pkg/stream"
)

// DXGI_FORMAT constants for the formats this descriptor commonly names.
const (
	DXGIFormatUnknown        = 0
	DXGIFormatBC1UNorm       = 71
	DXGIFormatBC1UNormSRGB   = 72
	DXGIFormatBC2UNorm       = 74
	DXGIFormatBC2UNormSRGB   = 75
	DXGIFormatBC3UNorm       = 77
	DXGIFormatBC3UNormSRGB   = 78
	DXGIFormatBC4UNorm       = 80
	DXGIFormatBC4SNorm       = 81
	DXGIFormatBC5UNorm       = 83
	DXGIFormatBC5SNorm       = 84
	DXGIFormatBC6HUF16       = 95
	DXGIFormatBC6HSF16       = 96
	DXGIFormatBC7UNorm       = 98
	DXGIFormatBC7UNormSRGB   = 99
	DXGIFormatR8G8B8A8UNorm  = 28
)

// MetadataSize is the fixed on-disk size of Metadata.
const MetadataSize = 256

// Metadata is the 256-byte texture descriptor a cooked texture export
// carries ahead of its raw compressed payload.
type Metadata struct {
	Width       uint32
	Height      uint32
	MipLevels   uint32
	DXGIFormat  uint32
	DDSFileSize uint32
	RawFileSize uint32
	Flags       uint32
	ArraySize   uint32
	Reserved    [224]byte
}

func (m *Metadata) String() string {
	return fmt.Sprintf("Texture: %dx%d, %d mips, format=%s, dds_size=%d, raw_size=%d",
		m.Width, m.Height, m.MipLevels, FormatName(m.DXGIFormat), m.DDSFileSize, m.RawFileSize)
}

// FormatName returns a human-readable name for a DXGI_FORMAT value.
func FormatName(format uint32) string {
	switch format {
	case DXGIFormatBC1UNorm:
		return "BC1_UNORM"
	case DXGIFormatBC1UNormSRGB:
		return "BC1_UNORM_SRGB"
	case DXGIFormatBC2UNorm:
		return "BC2_UNORM"
	case DXGIFormatBC2UNormSRGB:
		return "BC2_UNORM_SRGB"
	case DXGIFormatBC3UNorm:
		return "BC3_UNORM"
	case DXGIFormatBC3UNormSRGB:
		return "BC3_UNORM_SRGB"
	case DXGIFormatBC4UNorm:
		return "BC4_UNORM"
	case DXGIFormatBC4SNorm:
		return "BC4_SNORM"
	case DXGIFormatBC5UNorm:
		return "BC5_UNORM"
	case DXGIFormatBC5SNorm:
		return "BC5_SNORM"
	case DXGIFormatBC6HUF16:
		return "BC6H_UF16"
	case DXGIFormatBC6HSF16:
		return "BC6H_SF16"
	case DXGIFormatBC7UNorm:
		return "BC7_UNORM"
	case DXGIFormatBC7UNormSRGB:
		return "BC7_UNORM_SRGB"
	case DXGIFormatR8G8B8A8UNorm:
		return "R8G8B8A8_UNORM"
	default:
		return fmt.Sprintf("UNKNOWN(0x%x)", format)
	}
}

func init() {
	classreg.Register("TextureMetadata", func() any { return &Metadata{} })
	branch.RegisterObjectSerializer("TextureMetadata", Deserialize)
}

// Deserialize reads a Metadata from obj's bounded export stream.
func Deserialize(obj branch.ObjectContext, s *stream.Stream) error {
	meta, ok := obj.Instance().(*Metadata)
	if !ok {
		meta = &Metadata{}
	}

	var err error
	if meta.Width, err = s.U32("texmeta.width"); err != nil {
		return err
	}
	if meta.Height, err = s.U32("texmeta.height"); err != nil {
		return err
	}
	if meta.MipLevels, err = s.U32("texmeta.mipLevels"); err != nil {
		return err
	}
	if meta.DXGIFormat, err = s.U32("texmeta.dxgiFormat"); err != nil {
		return err
	}
	if meta.DDSFileSize, err = s.U32("texmeta.ddsFileSize"); err != nil {
		return err
	}
	if meta.RawFileSize, err = s.U32("texmeta.rawFileSize"); err != nil {
		return err
	}
	if meta.Flags, err = s.U32("texmeta.flags"); err != nil {
		return err
	}
	if meta.ArraySize, err = s.U32("texmeta.arraySize"); err != nil {
		return err
	}
	reserved, err := s.Bytes("texmeta.reserved", len(meta.Reserved))
	if err != nil {
		return err
	}
	copy(meta.Reserved[:], reserved)

	return nil
}

// Serialize writes meta back out in the layout Deserialize expects.
func Serialize(s *stream.Stream, meta *Metadata) error {
	if err := s.WriteU32(meta.Width); err != nil {
		return err
	}
	if err := s.WriteU32(meta.Height); err != nil {
		return err
	}
	if err := s.WriteU32(meta.MipLevels); err != nil {
		return err
	}
	if err := s.WriteU32(meta.DXGIFormat); err != nil {
		return err
	}
	if err := s.WriteU32(meta.DDSFileSize); err != nil {
		return err
	}
	if err := s.WriteU32(meta.RawFileSize); err != nil {
		return err
	}
	if err := s.WriteU32(meta.Flags); err != nil {
		return err
	}
	if err := s.WriteU32(meta.ArraySize); err != nil {
		return err
	}
	return s.WriteBytes(meta.Reserved[:])
}

// DDS header constants, used only by ConvertRawBCToDDS below.
const (
	ddsMagic           = 0x20534444 // "DDS "
	ddsHeaderSize       = 124
	ddsFlagsCaps        = 0x1
	ddsFlagsHeight      = 0x2
	ddsFlagsWidth       = 0x4
	ddsFlagsPixelFormat = 0x1000
	ddsFlagsMipMapCount = 0x20000
	ddsFlagsLinearSize  = 0x80000

	ddsSurfaceTexture = 0x1000
	ddsSurfaceMipmap  = 0x400000

	ddsPixelFormatSize = 32
	ddsFourCC          = 0x4

	dx10FourCC = 0x30315844 // "DX10"
)

// ConvertRawBCToDDS wraps headerless BC-compressed texture data with a
// standard DDS+DX10 header built from meta, so a raw export payload can
// be written out as a directly viewable .dds file.
func ConvertRawBCToDDS(rawData []byte, meta *Metadata) ([]byte, error) {
	if meta == nil {
		return nil, fmt.Errorf("texmeta: metadata is required")
	}
	if uint32(len(rawData)) != meta.RawFileSize {
		return nil, fmt.Errorf("texmeta: raw data size %d doesn't match metadata size %d", len(rawData), meta.RawFileSize)
	}

	header := ddsHeader(meta)
	out := make([]byte, len(header)+len(rawData))
	copy(out, header)
	copy(out[len(header):], rawData)
	return out, nil
}

func ddsHeader(meta *Metadata) []byte {
	h := make([]byte, 4+ddsHeaderSize+20)
	putU32 := func(off int, v uint32) {
		h[off] = byte(v)
		h[off+1] = byte(v >> 8)
		h[off+2] = byte(v >> 16)
		h[off+3] = byte(v >> 24)
	}

	putU32(0, ddsMagic)
	off := 4
	putU32(off, ddsHeaderSize)
	off += 4

	flags := uint32(ddsFlagsCaps | ddsFlagsHeight | ddsFlagsWidth | ddsFlagsPixelFormat | ddsFlagsLinearSize)
	if meta.MipLevels > 1 {
		flags |= ddsFlagsMipMapCount
	}
	putU32(off, flags)
	off += 4

	putU32(off, meta.Height)
	off += 4
	putU32(off, meta.Width)
	off += 4
	putU32(off, linearSize(meta.Width, meta.Height, meta.DXGIFormat))
	off += 4
	putU32(off, 0) // depth, unused
	off += 4
	putU32(off, meta.MipLevels)
	off += 4
	off += 44 // reserved[11]

	putU32(off, ddsPixelFormatSize)
	off += 4
	putU32(off, ddsFourCC)
	off += 4
	putU32(off, dx10FourCC)
	off += 4
	off += 20 // rgb bit masks, unused for DX10

	caps := uint32(ddsSurfaceTexture)
	if meta.MipLevels > 1 {
		caps |= ddsSurfaceMipmap
	}
	putU32(off, caps)
	off += 4
	off += 12 // caps2/3/4
	off += 4  // reserved2

	putU32(off, meta.DXGIFormat)
	off += 4
	putU32(off, 3) // resourceDimension = TEXTURE2D
	off += 4
	putU32(off, 0) // miscFlag
	off += 4
	putU32(off, meta.ArraySize)
	off += 4
	putU32(off, 0) // miscFlags2

	return h
}

func linearSize(width, height, format uint32) uint32 {
	blockSize := uint32(16)
	if format == DXGIFormatBC1UNorm || format == DXGIFormatBC1UNormSRGB ||
		format == DXGIFormatBC4UNorm || format == DXGIFormatBC4SNorm {
		blockSize = 8
	}
	blocksWide := (width + 3) / 4
	blocksHigh := (height + 3) / 4
	return blocksWide * blocksHigh * blockSize
}
