// Package assetref is an example per-class object deserializer: a
// generic cross-object reference block whose layout is selected by its
// total serialized size, registered against the placeholder class name
// "AssetReference" to demonstrate the branch.ObjectSerializerFunc
// plug-in point (§6).
package assetref

import (
	"fmt"
	"io"

	"github.com/goopsie/upkfile/internal/classreg"
	"github.com/goopsie/upkfile/pkg/branch"
	"github.com/goopsie/upkfile/pkg/stream"
)

// ReferenceType distinguishes a reference block's fixed layout by its
// total byte size.
type ReferenceType uint8

const (
	ReferenceTypeUnknown  ReferenceType = 0
	ReferenceTypeMaterial ReferenceType = 88
	ReferenceTypeTint     ReferenceType = 96
	ReferenceTypeTexture  ReferenceType = 120
	ReferenceTypeDual     ReferenceType = 136
	ReferenceTypeComplex  ReferenceType = 200
)

func (t ReferenceType) String() string {
	switch t {
	case ReferenceTypeMaterial:
		return "Material"
	case ReferenceTypeTint:
		return "Tint"
	case ReferenceTypeTexture:
		return "Texture"
	case ReferenceTypeDual:
		return "Dual"
	case ReferenceTypeComplex:
		return "Complex"
	default:
		return "Unknown"
	}
}

// Reference is one reference block: a source/target GUID pair, a flag
// word, and whatever additional bytes the block's declared size leaves
// over.
type Reference struct {
	Size           uint32
	ReferenceGUID  uint64
	TargetGUID     uint64
	Flags          uint32
	Type           ReferenceType
	AdditionalData []byte
}

func (r *Reference) String() string {
	return fmt.Sprintf("AssetRef[type=%s, size=%d, ref=%016x, target=%016x, flags=0x%x, extra=%d bytes]",
		r.Type, r.Size, r.ReferenceGUID, r.TargetGUID, r.Flags, len(r.AdditionalData))
}

func init() {
	classreg.Register("AssetReference", func() any { return &Reference{} })
	branch.RegisterObjectSerializer("AssetReference", Deserialize)
}

// Deserialize reads a Reference from obj's bounded export stream. The
// block's declared size picks which fixed layout applies; everything
// past the common 20-byte GUID+flags header is kept verbatim as
// AdditionalData rather than interpreted further.
func Deserialize(obj branch.ObjectContext, s *stream.Stream) error {
	ref, ok := obj.Instance().(*Reference)
	if !ok {
		ref = &Reference{}
	}

	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}
	if _, err := s.Seek(0, io.SeekStart); err != nil {
		return err
	}
	size := uint32(end)
	if size < 8 {
		return fmt.Errorf("assetref: data too short for a reference block: %d bytes", size)
	}
	ref.Size = size
	ref.Type = classifyBySize(size)

	refGUID, err := s.U64("assetref.referenceGuid")
	if err != nil {
		return err
	}
	ref.ReferenceGUID = refGUID

	if size >= 16 {
		targetGUID, err := s.U64("assetref.targetGuid")
		if err != nil {
			return err
		}
		ref.TargetGUID = targetGUID
	}
	if size >= 20 {
		flags, err := s.U32("assetref.flags")
		if err != nil {
			return err
		}
		ref.Flags = flags
	}
	if size > 20 {
		extra, err := s.Bytes("assetref.additionalData", int(size-20))
		if err != nil {
			return err
		}
		ref.AdditionalData = extra
	}

	return nil
}

// classifyBySize maps a reference block's total byte count to the
// ReferenceType its layout corresponds to, falling back to Unknown for
// anything that isn't one of the known fixed sizes.
func classifyBySize(size uint32) ReferenceType {
	switch size {
	case uint32(ReferenceTypeMaterial):
		return ReferenceTypeMaterial
	case uint32(ReferenceTypeTint):
		return ReferenceTypeTint
	case uint32(ReferenceTypeTexture):
		return ReferenceTypeTexture
	case uint32(ReferenceTypeDual):
		return ReferenceTypeDual
	case uint32(ReferenceTypeComplex), 296:
		return ReferenceTypeComplex
	default:
		return ReferenceTypeUnknown
	}
}

// Serialize writes ref back out in the layout Deserialize expects. The
// caller's bounded stream size must match len(ref.AdditionalData)+20 (or
// the shorter header-only forms), since size itself is never written —
// it is implied by the export's own SerialSize.
func Serialize(s *stream.Stream, ref *Reference) error {
	if err := s.WriteU64(ref.ReferenceGUID); err != nil {
		return err
	}
	if ref.Size < 16 {
		return nil
	}
	if err := s.WriteU64(ref.TargetGUID); err != nil {
		return err
	}
	if ref.Size < 20 {
		return nil
	}
	if err := s.WriteU32(ref.Flags); err != nil {
		return err
	}
	if len(ref.AdditionalData) > 0 {
		return s.WriteBytes(ref.AdditionalData)
	}
	return nil
}
