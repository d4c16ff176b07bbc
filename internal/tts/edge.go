package tts

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pp-group/edge-tts-go/biz/service/tts/edge"

	"github.com/adnanqk/newsanchor/internal/logger"
)

// EdgeEngine synthesizes English audio via Microsoft Edge TTS. The
// service accepts SSML-annotated scripts and streams back MP3 chunks.
type EdgeEngine struct {
	voice string
}

// NewEdgeEngine creates an Edge TTS engine with the given voice.
func NewEdgeEngine(voice string) *EdgeEngine {
	return &EdgeEngine{voice: voice}
}

// Voice returns the configured voice name.
func (e *EdgeEngine) Voice() string { return e.voice }

// Synthesize implements Engine, returning MP3 bytes.
func (e *EdgeEngine) Synthesize(ctx context.Context, text string) ([]byte, error) {
	logger.Debugf("[tts] edge: synthesizing %d chars, voice=%s", len([]rune(text)), e.voice)

	comm, err := edge.NewCommunicate(text, edge.WithVoice(e.voice))
	if err != nil {
		return nil, fmt.Errorf("edge-tts communicate: %w", err)
	}

	ch, err := comm.Stream()
	if err != nil {
		return nil, fmt.Errorf("edge-tts stream: %w", err)
	}

	var buf bytes.Buffer
	for msg := range ch {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if msgType, ok := msg["type"].(string); ok && msgType == "audio" {
			if data, ok := msg["data"].([]byte); ok {
				buf.Write(data)
			}
		}
	}

	if buf.Len() == 0 {
		return nil, fmt.Errorf("edge-tts returned no audio")
	}

	logger.Debugf("[tts] edge: received %d MP3 bytes", buf.Len())
	return buf.Bytes(), nil
}
