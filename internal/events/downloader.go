package events

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// ProgressFunc receives the number of bytes written so far and the expected
// total (-1 when the server did not announce it).
type ProgressFunc func(downloaded, total int64)

// Fetch downloads url into dest. The file is written to a temporary sibling
// and renamed, so a failed download never clobbers an existing cache.
func Fetch(ctx context.Context, client *http.Client, url, dest string, onProgress ProgressFunc) (int64, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to start download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("HTTP %d %s", resp.StatusCode, resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".events-*.ics")
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	total := resp.ContentLength
	var downloaded int64
	reader := io.TeeReader(resp.Body, &progressWriter{
		onWrite: func(n int) {
			current := atomic.AddInt64(&downloaded, int64(n))
			if onProgress != nil {
				onProgress(current, total)
			}
		},
	})
	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return 0, fmt.Errorf("failed to move download into place: %w", err)
	}
	return atomic.LoadInt64(&downloaded), nil
}

type progressWriter struct {
	onWrite func(int)
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	if pw.onWrite != nil {
		pw.onWrite(len(p))
	}
	return len(p), nil
}

type downloadProgressMsg struct {
	downloaded int64
	total      int64
}

type downloadCompleteMsg struct {
	size   int64
	events int
	err    error
}

type downloadModel struct {
	url        string
	destPath   string
	downloaded int64
	total      int64
	bar        progress.Model
	done       bool
	err        error
	size       int64
	events     int
	progressCh chan downloadProgressMsg
	completeCh chan downloadCompleteMsg
	// ctx is cancelled when the user aborts the download.
	ctx        context.Context
	cancel     context.CancelFunc
}

func newDownloadModel(url, destPath string) downloadModel {
	ctx, cancel := context.WithCancel(context.Background())
	return downloadModel{
		ctx:        ctx,
		cancel:     cancel,
		url:        url,
		destPath:   destPath,
		bar:        progress.New(progress.WithDefaultGradient(), progress.WithWidth(50)),
		progressCh: make(chan downloadProgressMsg, 10),
		completeCh: make(chan downloadCompleteMsg, 1),
	}
}

func (m downloadModel) Init() tea.Cmd {
	return tea.Batch(m.startDownload, m.listen)
}

func (m downloadModel) listen() tea.Msg {
	select {
	case msg := <-m.progressCh:
		return msg
	case msg := <-m.completeCh:
		return msg
	}
}

func (m downloadModel) startDownload() tea.Msg {
	go func() {
		size, err := Fetch(m.ctx, nil, m.url, m.destPath, func(downloaded, total int64) {
			select {
			case m.progressCh <- downloadProgressMsg{downloaded: downloaded, total: total}:
			default:
				// Channel is full, skip this update
			}
		})
		if err != nil {
			m.completeCh <- downloadCompleteMsg{err: err}
			return
		}
		msg := downloadCompleteMsg{size: size}
		// A feed that does not parse is still cached; the count is informational.
		if buckets, err := LoadFromFile(m.destPath, time.Local); err == nil {
			msg.events = buckets.Count()
		}
		m.completeCh <- msg
	}()
	return nil
}

func (m downloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.done {
			return m, tea.Quit
		}
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.cancel()
			return m, tea.Quit
		}
	case downloadCompleteMsg:
		m.done = true
		m.err = msg.err
		m.size = msg.size
		m.events = msg.events
		return m, nil
	case downloadProgressMsg:
		m.downloaded = msg.downloaded
		m.total = msg.total
		return m, m.listen
	}
	return m, nil
}

func (m downloadModel) View() string {
	if m.done {
		if m.err != nil {
			return fmt.Sprintf("Download failed\n\n%v\n\nYou can save the feed manually to %s\n\nPress any key to exit...\n", m.err, m.destPath)
		}
		return fmt.Sprintf("Download complete\n\nSize: %s\nEvents: %d\nSaved to: %s\n\nPress any key to exit...\n",
			formatBytes(m.size), m.events, m.destPath)
	}
	if m.total > 0 {
		percent := float64(m.downloaded) / float64(m.total)
		return fmt.Sprintf("Downloading calendar feed...\n\n%s\n%s / %s\n\nPress Ctrl+C to cancel\n",
			m.bar.ViewAs(min(percent, 1)), formatBytes(m.downloaded), formatBytes(m.total))
	}
	return fmt.Sprintf("Downloading calendar feed...\n\n%s\n\nPress Ctrl+C to cancel\n", formatBytes(m.downloaded))
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// Download fetches the feed at url into the cache, showing a progress view.
func Download(url string) error {
	cachePath, err := GetCachePath()
	if err != nil {
		return err
	}
	m := newDownloadModel(url, cachePath)
	defer m.cancel()
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(downloadModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
