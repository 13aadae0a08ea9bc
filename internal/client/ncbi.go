package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"ncbi/fetcher/internal/config"
	"ncbi/fetcher/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// Downloader streams remote files to disk.
type Downloader interface {
	DownloadFile(ctx context.Context, url, dest string, onProgress func(written, total int64)) (int64, error)
	Fetch(ctx context.Context, task domain.FetchTask, onProgress func(written, total int64)) (int64, error)
}

type ncbiClient struct {
	rl         ratelimit.Limiter
	httpClient *resty.Client
}

// NewNCBIClient builds the shared rate-limited HTTP client used for catalog,
// taxdump and assembly downloads.
func NewNCBIClient(cfg config.DownloadConfig) Downloader {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout) * time.Second).
		SetHeader("User-Agent", "ncbi-fetcher/1.0")

	if cfg.Proxy != "" {
		client.SetProxy(cfg.Proxy)
		log.Infof("Using proxy: %s", cfg.Proxy)
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &ncbiClient{
		rl:         rl,
		httpClient: client,
	}
}

// progressWriter forwards byte counts to a callback as the response body is
// copied to disk.
type progressWriter struct {
	writer   io.Writer
	total    int64
	written  int64
	onUpdate func(written, total int64)
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.writer.Write(p)
	pw.written += int64(n)
	if pw.onUpdate != nil {
		pw.onUpdate(pw.written, pw.total)
	}
	return n, err
}

// DownloadFile streams a GET response body to dest. The callback receives
// cumulative bytes written and the content length reported by the server
// (-1 when unknown). There are no retries; a failure is returned as-is.
func (c *ncbiClient) DownloadFile(ctx context.Context, url, dest string, onProgress func(written, total int64)) (int64, error) {
	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, fmt.Errorf("HTTP error fetching %s: %d %s", url, resp.StatusCode(), resp.Status())
	}

	file, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("unable to create %s: %w", dest, err)
	}
	defer file.Close()

	var writer io.Writer = file
	if onProgress != nil {
		writer = &progressWriter{
			writer:   file,
			total:    resp.RawResponse.ContentLength,
			onUpdate: onProgress,
		}
	}

	written, err := io.Copy(writer, resp.Body)
	if err != nil {
		return written, fmt.Errorf("unable to write %s: %w", dest, err)
	}

	log.Debugf("Downloaded %s (%d bytes) to %s", url, written, dest)
	return written, nil
}

// Fetch executes one fetch task.
func (c *ncbiClient) Fetch(ctx context.Context, task domain.FetchTask, onProgress func(written, total int64)) (int64, error) {
	return c.DownloadFile(ctx, task.URL, task.Destination, onProgress)
}
