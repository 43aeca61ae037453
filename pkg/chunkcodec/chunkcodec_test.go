package chunkcodec

import (
	"bytes"
	"testing"
)

func TestZlibRoundTrip(t *testing.T) {
	src := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 64)
	compressed, err := EncodeZlib(src, 6)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode("zlib", compressed, len(src))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, src) {
		t.Error("zlib round trip mismatch")
	}
}

func TestUnknownCodec(t *testing.T) {
	if _, err := Decode("does-not-exist", nil, 0); err == nil {
		t.Fatal("expected ErrUnknownCodec")
	}
}

func TestRegisteredNames(t *testing.T) {
	names := Names()
	want := map[string]bool{"zlib": false, "zstd-datadog": false, "zstd-klauspost": false, "lz4": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, found := range want {
		if !found {
			t.Errorf("expected codec %q to be registered", n)
		}
	}
}
