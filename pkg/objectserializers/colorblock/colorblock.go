// Package colorblock is an example per-class object deserializer: a
// fixed-size block of RGBA float colors keyed by a 64-bit resource id,
// registered against the placeholder class name "ColorBlock" to
// demonstrate the branch.ObjectSerializerFunc plug-in point (§6 of the
// package format's external-deserializer contract).
package colorblock

import (
	"fmt"
	"strings"

	"github.com/goopsie/upkfile/internal/classreg"
	"github.com/goopsie/upkfile/pkg/branch"
	"github.com/goopsie/upkfile/pkg/stream"
)

// Color is an RGBA color with float32 components (0.0-1.0).
type Color struct {
	R, G, B, A float32
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// String returns a human-readable color representation.
func (c Color) String() string {
	return fmt.Sprintf("RGBA(%.3f, %.3f, %.3f, %.3f)", c.R, c.G, c.B, c.A)
}

// CSS returns the color as a CSS rgba() string.
func (c Color) CSS() string {
	r := uint8(clamp(c.R, 0, 1) * 255)
	g := uint8(clamp(c.G, 0, 1) * 255)
	b := uint8(clamp(c.B, 0, 1) * 255)
	a := clamp(c.A, 0, 1)
	return fmt.Sprintf("rgba(%d, %d, %d, %.3f)", r, g, b, a)
}

// BlockSize is the fixed on-disk size of a Block (0x60 = 96 bytes: an
// 8-byte resource id, 5 color blocks of 16 bytes each, 8 bytes reserved).
const BlockSize = 0x60

// Block is a named set of five colors, the shape a cosmetic color-scheme
// object exports.
type Block struct {
	ResourceID uint64
	Colors     [5]Color
	Reserved   [8]byte
}

func (b *Block) String() string {
	return fmt.Sprintf("ColorBlock[%016x]: %s / %s", b.ResourceID, b.Colors[0], b.Colors[1])
}

// ToCSS generates CSS custom properties for this block's colors, named
// "main-1", "accent-1", "main-2", "accent-2", "body".
func (b *Block) ToCSS(name string) string {
	cssName := strings.ToLower(strings.ReplaceAll(name, "_", "-"))

	var sb strings.Builder
	sb.WriteString(":root {\n")
	labels := []string{"main-1", "accent-1", "main-2", "accent-2", "body"}
	for i, color := range b.Colors {
		varName := fmt.Sprintf("--tint-%s-%s", cssName, labels[i])
		sb.WriteString(fmt.Sprintf("  %-40s %s;\n", varName+":", color.CSS()))
	}
	sb.WriteString("}\n")
	return sb.String()
}

func init() {
	classreg.Register("ColorBlock", func() any { return &Block{} })
	branch.RegisterObjectSerializer("ColorBlock", Deserialize)
}

// Deserialize reads a Block from obj's bounded export stream.
func Deserialize(obj branch.ObjectContext, s *stream.Stream) error {
	block, ok := obj.Instance().(*Block)
	if !ok {
		block = &Block{}
	}

	id, err := s.U64("colorblock.resourceId")
	if err != nil {
		return err
	}
	block.ResourceID = id

	for i := range block.Colors {
		r, err := s.F32("colorblock.r")
		if err != nil {
			return err
		}
		g, err := s.F32("colorblock.g")
		if err != nil {
			return err
		}
		bl, err := s.F32("colorblock.b")
		if err != nil {
			return err
		}
		a, err := s.F32("colorblock.a")
		if err != nil {
			return err
		}
		block.Colors[i] = Color{R: r, G: g, B: bl, A: a}
	}

	reserved, err := s.Bytes("colorblock.reserved", len(block.Reserved))
	if err != nil {
		return err
	}
	copy(block.Reserved[:], reserved)

	return nil
}

// Serialize writes block back out in the layout Deserialize expects.
func Serialize(s *stream.Stream, block *Block) error {
	if err := s.WriteU64(block.ResourceID); err != nil {
		return err
	}
	for _, c := range block.Colors {
		if err := s.WriteF32(c.R); err != nil {
			return err
		}
		if err := s.WriteF32(c.G); err != nil {
			return err
		}
		if err := s.WriteF32(c.B); err != nil {
			return err
		}
		if err := s.WriteF32(c.A); err != nil {
			return err
		}
	}
	return s.WriteBytes(block.Reserved[:])
}
