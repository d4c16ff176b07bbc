package audio

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestInt16Float32RoundTrip(t *testing.T) {
	in := []int16{0, 1000, -1000, math.MaxInt16, math.MinInt16 + 1}
	out := Float32ToInt16(Int16ToFloat32(in))
	for i := range in {
		diff := int(in[i]) - int(out[i])
		if diff < -1 || diff > 1 {
			t.Errorf("sample %d: %d -> %d", i, in[i], out[i])
		}
	}
}

func TestFloat32ToInt16Clamps(t *testing.T) {
	out := Float32ToInt16([]float32{2.0, -2.0})
	if out[0] != math.MaxInt16 {
		t.Errorf("positive overflow = %d", out[0])
	}
	if out[1] != -math.MaxInt16 {
		t.Errorf("negative overflow = %d", out[1])
	}
}

func TestBytesInt16RoundTrip(t *testing.T) {
	in := []int16{0, 255, 256, -1, 12345, -12345}
	out := BytesToInt16(Int16ToBytes(in))
	for i := range in {
		if in[i] != out[i] {
			t.Errorf("sample %d: %d -> %d", i, in[i], out[i])
		}
	}
}

func TestResample(t *testing.T) {
	in := make([]float32, 22050)
	for i := range in {
		in[i] = float32(math.Sin(2 * math.Pi * 440 * float64(i) / 22050))
	}

	out := Resample(in, 22050, 16000)
	want := 16000
	if len(out) < want-2 || len(out) > want+2 {
		t.Errorf("resampled length = %d, want ~%d", len(out), want)
	}

	// Identity when rates match.
	same := Resample(in, 22050, 22050)
	if len(same) != len(in) {
		t.Errorf("identity resample changed length: %d", len(same))
	}

	if out := Resample(nil, 22050, 16000); len(out) != 0 {
		t.Errorf("empty input produced %d samples", len(out))
	}
}

func TestWriteWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	samples := []float32{0, 0.5, -0.5, 1.0}

	if err := WriteWAV(path, samples, 16000); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) != 44+len(samples)*2 {
		t.Fatalf("file length = %d", len(data))
	}
	if string(data[:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}
	if channels := binary.LittleEndian.Uint16(data[22:24]); channels != 1 {
		t.Errorf("channels = %d", channels)
	}
	if rate := binary.LittleEndian.Uint32(data[24:28]); rate != 16000 {
		t.Errorf("sample rate = %d", rate)
	}
	if bits := binary.LittleEndian.Uint16(data[34:36]); bits != 16 {
		t.Errorf("bits per sample = %d", bits)
	}
	if dataLen := binary.LittleEndian.Uint32(data[40:44]); dataLen != uint32(len(samples)*2) {
		t.Errorf("data chunk length = %d", dataLen)
	}
}

func TestConvertForLipSyncMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := ConvertForLipSync(filepath.Join(dir, "missing.mp3"), filepath.Join(dir, "out.wav"))
	if err == nil {
		t.Fatal("expected error for missing input")
	}
}
