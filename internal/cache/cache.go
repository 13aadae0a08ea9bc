package cache

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ncbi/fetcher/internal/client"
	"ncbi/fetcher/internal/domain"

	"github.com/klauspost/pgzip"
	log "github.com/sirupsen/logrus"
)

const taxdumpURL = "https://ftp.ncbi.nih.gov/pub/taxonomy/taxdump.tar.gz"

// Cache materializes the two input artifacts (assembly summary, extracted
// taxdump directory) on disk, re-downloading only when absent or when a
// refresh is forced.
type Cache struct {
	downloader client.Downloader
	refresh    bool
}

func New(downloader client.Downloader, refresh bool) *Cache {
	return &Cache{
		downloader: downloader,
		refresh:    refresh,
	}
}

// EnsureSummary makes the assembly summary for source available at path.
func (c *Cache) EnsureSummary(ctx context.Context, source domain.AssemblySource, path string) error {
	if !c.refresh {
		if _, err := os.Stat(path); err == nil {
			log.Debugf("Reusing cached assembly summary %s", path)
			return nil
		}
	}

	url, ok := source.SummaryURL()
	if !ok {
		return fmt.Errorf("assembly source %s has no summary URL", source)
	}

	log.Infof("Downloading assembly summary from %s", url)
	if _, err := c.downloader.DownloadFile(ctx, url, path, logBytes(path)); err != nil {
		return fmt.Errorf("unable to fetch assembly summary: %w", err)
	}
	return nil
}

// EnsureTaxdump makes an extracted taxdump directory available at dir. The
// tarball is downloaded next to dir and removed after extraction.
func (c *Cache) EnsureTaxdump(ctx context.Context, dir string) error {
	if !c.refresh {
		if _, err := os.Stat(dir); err == nil {
			log.Debugf("Reusing cached taxonomy dump %s", dir)
			return nil
		}
	}

	tarball := dir + ".tar.gz"
	log.Infof("Downloading taxonomy dump from %s", taxdumpURL)
	if _, err := c.downloader.DownloadFile(ctx, taxdumpURL, tarball, logBytes(tarball)); err != nil {
		return fmt.Errorf("unable to fetch taxonomy dump: %w", err)
	}

	log.Infof("Extracting taxonomy dump to %s", dir)
	if err := extractTarGz(tarball, dir); err != nil {
		return err
	}

	if err := os.Remove(tarball); err != nil {
		log.Warnf("Unable to remove %s: %v", tarball, err)
	}
	return nil
}

// extractTarGz unpacks the flat taxdump tarball into dir. Entry names are
// flattened with filepath.Base so archive paths cannot escape dir.
func extractTarGz(tarball, dir string) error {
	file, err := os.Open(tarball)
	if err != nil {
		return fmt.Errorf("unable to open %s: %w", tarball, err)
	}
	defer file.Close()

	zr, err := pgzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("unable to decompress %s: %w", tarball, err)
	}
	defer zr.Close()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create %s: %w", dir, err)
	}

	tr := tar.NewReader(zr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("unable to extract %s: %w", tarball, err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		dest := filepath.Join(dir, filepath.Base(hdr.Name))
		out, err := os.Create(dest)
		if err != nil {
			return fmt.Errorf("unable to create %s: %w", dest, err)
		}
		if _, err := io.Copy(out, tr); err != nil {
			out.Close()
			return fmt.Errorf("unable to write %s: %w", dest, err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("unable to write %s: %w", dest, err)
		}
	}
}

// logBytes reports artifact download progress at sparse intervals.
func logBytes(name string) func(written, total int64) {
	const step = 64 << 20
	var next int64 = step
	return func(written, total int64) {
		if written >= next {
			next += step
			if total > 0 {
				log.Infof("%s: %d of %d bytes", name, written, total)
			} else {
				log.Infof("%s: %d bytes", name, written)
			}
		}
	}
}
