// Package audioref is an example per-class object deserializer: a fixed
// 24-byte audio-asset reference header followed by a variable reserved
// tail, registered against the placeholder class name "AudioReference"
// to demonstrate the branch.ObjectSerializerFunc plug-in point (§6).
package audioref

import (
	"fmt"
	"io"

	"github.com/goopsie/upkfile/internal/classreg"
	"github.com/goopsie/upkfile/pkg/branch"
	"github.com/goopsie/upkfile/pkg/stream"
)

// HeaderSize is the fixed size of Reference's leading fields, before the
// variable-length Reserved tail.
const HeaderSize = 24

// Reference is an audio asset reference: a type identifier, a reference
// to the target asset, a count/flags pair, and whatever trailing bytes
// the export's declared size leaves over.
type Reference struct {
	GUIDType       uint64
	AssetReference uint64
	Count          uint32
	Flags          uint32
	Reserved       []byte
}

func (r *Reference) String() string {
	return fmt.Sprintf("AudioRef[guid=%016x, asset=%016x, count=%d, flags=0x%x, extra=%d bytes]",
		r.GUIDType, r.AssetReference, r.Count, r.Flags, len(r.Reserved))
}

func init() {
	classreg.Register("AudioReference", func() any { return &Reference{} })
	branch.RegisterObjectSerializer("AudioReference", Deserialize)
}

// Deserialize reads a Reference from obj's bounded export stream.
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
	if end < HeaderSize {
		return fmt.Errorf("audioref: data too short for an audio reference header: %d bytes", end)
	}

	guidType, err := s.U64("audioref.guidType")
	if err != nil {
		return err
	}
	ref.GUIDType = guidType

	assetRef, err := s.U64("audioref.assetReference")
	if err != nil {
		return err
	}
	ref.AssetReference = assetRef

	count, err := s.U32("audioref.count")
	if err != nil {
		return err
	}
	ref.Count = count

	flags, err := s.U32("audioref.flags")
	if err != nil {
		return err
	}
	ref.Flags = flags

	if remaining := end - HeaderSize; remaining > 0 {
		reserved, err := s.Bytes("audioref.reserved", int(remaining))
		if err != nil {
			return err
		}
		ref.Reserved = reserved
	}

	return nil
}

// Serialize writes ref back out in the layout Deserialize expects.
func Serialize(s *stream.Stream, ref *Reference) error {
	if err := s.WriteU64(ref.GUIDType); err != nil {
		return err
	}
	if err := s.WriteU64(ref.AssetReference); err != nil {
		return err
	}
	if err := s.WriteU32(ref.Count); err != nil {
		return err
	}
	if err := s.WriteU32(ref.Flags); err != nil {
		return err
	}
	if len(ref.Reserved) > 0 {
		return s.WriteBytes(ref.Reserved)
	}
	return nil
}
