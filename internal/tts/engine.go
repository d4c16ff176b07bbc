// Package tts synthesizes broadcast audio from anchor scripts.
package tts

import "context"

// Engine synthesizes speech. Engines return MP3 bytes; the audio
// package handles conversion for downstream consumers.
type Engine interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
