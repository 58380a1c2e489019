// Package pcm holds the small codec helpers for audio payloads: base64
// wrapping for the wire, 16-bit little-endian sample conversion, and a WAV
// container writer for raw PCM. Audio correctness depends on these staying
// bit-exact, so everything here is pure and round-trip tested.
package pcm

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// Encode wraps raw bytes in standard base64 for inline transport.
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Decode unwraps standard base64 back into raw bytes.
func Decode(encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode base64 audio: %w", err)
	}
	return data, nil
}

// Samples interprets raw bytes as little-endian signed 16-bit PCM samples.
// A trailing odd byte is an error, not silently dropped.
func Samples(data []byte) ([]int16, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("odd pcm payload length %d", len(data))
	}

	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
	}
	return samples, nil
}

// Bytes converts samples back to little-endian signed 16-bit PCM bytes.
func Bytes(samples []int16) []byte {
	data := make([]byte, 2*len(samples))
	for i, sample := range samples {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(sample))
	}
	return data
}

// WAV wraps raw 16-bit PCM data in a RIFF/WAVE container so generic
// players can consume it.
func WAV(data []byte, sampleRate, channels int) []byte {
	const headerSize = 44
	byteRate := sampleRate * channels * 2
	blockAlign := channels * 2

	out := make([]byte, 0, headerSize+len(data))
	out = append(out, "RIFF"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(36+len(data)))
	out = append(out, "WAVE"...)

	out = append(out, "fmt "...)
	out = binary.LittleEndian.AppendUint32(out, 16)
	out = binary.LittleEndian.AppendUint16(out, 1) // PCM
	out = binary.LittleEndian.AppendUint16(out, uint16(channels))
	out = binary.LittleEndian.AppendUint32(out, uint32(sampleRate))
	out = binary.LittleEndian.AppendUint32(out, uint32(byteRate))
	out = binary.LittleEndian.AppendUint16(out, uint16(blockAlign))
	out = binary.LittleEndian.AppendUint16(out, 16) // bits per sample

	out = append(out, "data"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(data)))
	out = append(out, data...)
	return out
}
