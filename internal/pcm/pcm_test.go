package pcm

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestEncodeDecode(t *testing.T) {
	original := []byte{0x00, 0x01, 0x7f, 0x80, 0xff}

	decoded, err := Decode(Encode(original))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("round trip = %v, want %v", decoded, original)
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode("not base64!!!"); err == nil {
		t.Error("expected error for invalid base64")
	}
}

func TestSamplesBytes(t *testing.T) {
	samples := []int16{0, 1, -1, 32767, -32768}

	got, err := Samples(Bytes(samples))
	if err != nil {
		t.Fatalf("Samples: %v", err)
	}
	if len(got) != len(samples) {
		t.Fatalf("got %d samples, want %d", len(got), len(samples))
	}
	for i := range samples {
		if got[i] != samples[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], samples[i])
		}
	}
}

func TestSamplesOddLength(t *testing.T) {
	if _, err := Samples([]byte{0x01, 0x02, 0x03}); err == nil {
		t.Error("expected error for odd-length payload")
	}
}

func TestWAV(t *testing.T) {
	data := Bytes([]int16{100, -100, 200, -200})
	wav := WAV(data, 24000, 1)

	if len(wav) != 44+len(data) {
		t.Fatalf("wav length = %d, want %d", len(wav), 44+len(data))
	}
	if string(wav[0:4]) != "RIFF" {
		t.Errorf("missing RIFF marker")
	}
	if string(wav[8:12]) != "WAVE" {
		t.Errorf("missing WAVE marker")
	}
	if string(wav[36:40]) != "data" {
		t.Errorf("missing data chunk marker")
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != 24000 {
		t.Errorf("sample rate = %d, want 24000", got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != uint32(len(data)) {
		t.Errorf("data size = %d, want %d", got, len(data))
	}
	if !bytes.Equal(wav[44:], data) {
		t.Errorf("payload mismatch")
	}
}
