// Package video drives Wav2Lip to lip-sync an anchor avatar to
// broadcast audio.
package video

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/adnanqk/newsanchor/internal/audio"
	"github.com/adnanqk/newsanchor/internal/config"
	"github.com/adnanqk/newsanchor/internal/logger"
)

// Runner generates lip-synced videos through the Wav2Lip inference
// script.
type Runner struct {
	cfg *config.Config
}

// NewRunner creates a Runner.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg}
}

func (r *Runner) checkpointPath() string {
	return filepath.Join(r.cfg.Video.Wav2LipDir, "checkpoints", "wav2lip_gan.pth")
}

// Generate lip-syncs the avatar for a language to the given MP3 and
// returns the final video path under the video output directory.
func (r *Runner) Generate(ctx context.Context, audioPath, language string) (string, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("audio file: %w", err)
	}

	avatar, ok := r.cfg.Video.Avatars[language]
	if !ok {
		return "", fmt.Errorf("no avatar configured for language %q", language)
	}
	if _, err := os.Stat(avatar); err != nil {
		return "", fmt.Errorf("avatar file: %w", err)
	}
	if _, err := os.Stat(r.checkpointPath()); err != nil {
		return "", fmt.Errorf("wav2lip checkpoint: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "video_"+language+"_")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	timestamp := time.Now().Unix()
	facePath := filepath.Join(tmpDir, fmt.Sprintf("anchor_%s_%d.png", language, timestamp))
	cleanAudioPath := filepath.Join(tmpDir, "clean_audio_16k.wav")
	outputPath := filepath.Join(tmpDir, fmt.Sprintf("output_%s_%d.mp4", language, timestamp))

	if err := copyFile(avatar, facePath); err != nil {
		return "", fmt.Errorf("stage avatar: %w", err)
	}

	// Wav2Lip wants 16 kHz WAV, not the MP3 the engines emit.
	duration, err := audio.ConvertForLipSync(audioPath, cleanAudioPath)
	if err != nil {
		return "", fmt.Errorf("prepare audio: %w", err)
	}

	budget := time.Duration(r.cfg.Video.TimeoutSecs) * time.Second
	if duration > budget {
		logger.Warnf("[video] audio runs %s, over the %s budget; generation may time out",
			duration.Round(time.Second), budget)
	}

	// Inference is slow; give it three times the audio budget.
	ctx, cancel := context.WithTimeout(ctx, 3*budget)
	defer cancel()

	args := r.buildArgs(facePath, cleanAudioPath, outputPath)
	logger.Infof("[video] running wav2lip for %s (%s of audio)",
		language, duration.Round(time.Second))

	cmd := exec.CommandContext(ctx, r.cfg.Video.PythonBin, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("wav2lip timed out after %s", 3*budget)
		}
		return "", fmt.Errorf("wav2lip: %w; stderr: %s", err, stderr.String())
	}

	info, err := os.Stat(outputPath)
	if err != nil || info.Size() == 0 {
		return "", fmt.Errorf("wav2lip produced no output; stderr: %s", stderr.String())
	}

	finalPath := filepath.Join(r.cfg.VideoDir(),
		fmt.Sprintf("%s_broadcast_%d.mp4", language, timestamp))
	if err := os.MkdirAll(filepath.Dir(finalPath), 0755); err != nil {
		return "", fmt.Errorf("create video directory: %w", err)
	}
	if err := copyFile(outputPath, finalPath); err != nil {
		return "", fmt.Errorf("copy video: %w", err)
	}

	logger.Infof("[video] wrote %s (%d bytes)", finalPath, info.Size())
	return finalPath, nil
}

// buildArgs assembles the inference.py command line.
func (r *Runner) buildArgs(facePath, audioPath, outputPath string) []string {
	return []string{
		filepath.Join(r.cfg.Video.Wav2LipDir, "inference.py"),
		"--checkpoint_path", r.checkpointPath(),
		"--face", facePath,
		"--audio", audioPath,
		"--outfile", outputPath,
		"--pads", "0", "20", "0", "0",
		"--resize_factor", "1",
	}
}

// ValidateRequirements reports what is missing before generation is
// attempted: the Wav2Lip checkout, its checkpoint, and the avatars.
func (r *Runner) ValidateRequirements() []string {
	var missing []string

	if _, err := os.Stat(filepath.Join(r.cfg.Video.Wav2LipDir, "inference.py")); err != nil {
		missing = append(missing, fmt.Sprintf("wav2lip script: %s", filepath.Join(r.cfg.Video.Wav2LipDir, "inference.py")))
	}
	if _, err := os.Stat(r.checkpointPath()); err != nil {
		missing = append(missing, fmt.Sprintf("checkpoint: %s", r.checkpointPath()))
	}
	for lang, avatar := range r.cfg.Video.Avatars {
		if _, err := os.Stat(avatar); err != nil {
			missing = append(missing, fmt.Sprintf("avatar (%s): %s", lang, avatar))
		}
	}
	return missing
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
