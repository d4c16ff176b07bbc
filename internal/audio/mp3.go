package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/adnanqk/newsanchor/internal/logger"
)

// lipSyncSampleRate is what the lip-sync model expects.
const lipSyncSampleRate = 16000

// DecodeMP3 decodes MP3 bytes to mono float32 samples plus the source
// sample rate. The decoder emits stereo signed 16-bit LE PCM, four
// bytes per frame; channels are averaged down to mono.
func DecodeMP3(data []byte) ([]float32, int, error) {
	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("mp3 decode: %w", err)
	}

	sampleRate := decoder.SampleRate()

	pcm, err := io.ReadAll(decoder)
	if err != nil {
		return nil, 0, fmt.Errorf("read pcm: %w", err)
	}

	const bytesPerFrame = 4
	pcm = pcm[:len(pcm)/bytesPerFrame*bytesPerFrame]

	numFrames := len(pcm) / bytesPerFrame
	samples := make([]float32, numFrames)
	for i := 0; i < numFrames; i++ {
		offset := i * bytesPerFrame
		left := int16(binary.LittleEndian.Uint16(pcm[offset : offset+2]))
		right := int16(binary.LittleEndian.Uint16(pcm[offset+2 : offset+4]))
		samples[i] = (float32(left) + float32(right)) / 2.0 / 32768.0
	}

	return samples, sampleRate, nil
}

// Duration returns the playing time of MP3 data.
func Duration(data []byte) (time.Duration, error) {
	samples, rate, err := DecodeMP3(data)
	if err != nil {
		return 0, err
	}
	if rate == 0 {
		return 0, fmt.Errorf("zero sample rate")
	}
	return time.Duration(float64(len(samples)) / float64(rate) * float64(time.Second)), nil
}

// WriteWAV writes mono float32 samples as a 16-bit PCM WAV file.
func WriteWAV(path string, samples []float32, sampleRate int) error {
	pcm := Float32ToBytes(samples)

	var buf bytes.Buffer
	dataLen := uint32(len(pcm))

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*2)) // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(2))            // block align
	binary.Write(&buf, binary.LittleEndian, uint16(16))           // bits per sample

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataLen)
	buf.Write(pcm)

	return os.WriteFile(path, buf.Bytes(), 0644)
}

// ConvertForLipSync reads an MP3 file and writes a 16 kHz mono WAV
// next to it for the lip-sync stage. Returns the WAV path and the
// audio duration.
func ConvertForLipSync(mp3Path, wavPath string) (time.Duration, error) {
	data, err := os.ReadFile(mp3Path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", mp3Path, err)
	}

	samples, rate, err := DecodeMP3(data)
	if err != nil {
		return 0, err
	}
	if len(samples) == 0 {
		return 0, fmt.Errorf("%s decoded to no samples", mp3Path)
	}

	duration := time.Duration(float64(len(samples)) / float64(rate) * float64(time.Second))

	samples = Resample(samples, rate, lipSyncSampleRate)
	if err := WriteWAV(wavPath, samples, lipSyncSampleRate); err != nil {
		return 0, fmt.Errorf("write %s: %w", wavPath, err)
	}

	logger.Debugf("[audio] converted %s -> %s (%s at %d Hz)",
		mp3Path, wavPath, duration.Round(time.Millisecond), lipSyncSampleRate)
	return duration, nil
}
