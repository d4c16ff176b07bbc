package video

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/adnanqk/newsanchor/internal/logger"
)

// Mirrors for the pretrained GAN checkpoint; tried in order.
var checkpointURLs = []string{
	"https://github.com/Rudrabha/Wav2Lip/releases/download/v1.0/wav2lip_gan.pth",
	"https://iiitaphyd-my.sharepoint.com/personal/radrabha_m_research_iiit_ac_in/_layouts/15/download.aspx?share=EuqU-7p6CpdDvAuqzX2yS9YBziX0mO6EN6x1sD4NsG_2TQ",
}

// A real checkpoint is ~400 MB; anything tiny is an error page.
const minCheckpointSize = 1_000_000

// EnsureCheckpoint downloads the Wav2Lip checkpoint if it is not
// already present.
func (r *Runner) EnsureCheckpoint(ctx context.Context) error {
	path := r.checkpointPath()
	if info, err := os.Stat(path); err == nil && info.Size() >= minCheckpointSize {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create checkpoint directory: %w", err)
	}

	client := &http.Client{Timeout: 30 * time.Minute}
	var lastErr error
	for _, url := range checkpointURLs {
		logger.Infof("[video] downloading checkpoint from %s", url)
		if err := downloadTo(ctx, client, url, path); err != nil {
			lastErr = err
			logger.Warnf("[video] download failed: %v", err)
			continue
		}

		info, err := os.Stat(path)
		if err == nil && info.Size() >= minCheckpointSize {
			logger.Infof("[video] checkpoint ready (%d bytes)", info.Size())
			return nil
		}
		var size int64
		if info != nil {
			size = info.Size()
		}
		lastErr = fmt.Errorf("downloaded file too small (%d bytes)", size)
		os.Remove(path)
	}

	return fmt.Errorf("checkpoint download failed from all mirrors: %w", lastErr)
}

func downloadTo(ctx context.Context, client *http.Client, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	tmp := path + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
