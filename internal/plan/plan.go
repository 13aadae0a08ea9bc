package plan

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"ncbi/fetcher/internal/domain"
)

// ErrMalformedRemotePath means a record's remote path has no final path
// segment to derive a filename from.
var ErrMalformedRemotePath = errors.New("MalformedRemotePath")

// Plan is the ordered fetch list derived from the filtered catalog, plus the
// records that could not produce a task. Derivation is pure; a bad record
// only drops itself, never the rest of the batch.
type Plan struct {
	Tasks    []domain.FetchTask
	Failures []domain.FetchFailure
}

// Build derives one fetch task per record for the selected output format.
// The remote path's final segment is the base filename; the download URL is
// {ftp_path}/{base}_genomic.{ext}.gz and the destination {base}.{ext}.gz
// under outDir.
func Build(records []domain.Assembly, format domain.AssemblyFormat, outDir string) *Plan {
	p := &Plan{}
	ext := format.Extension()

	for _, record := range records {
		idx := strings.LastIndex(record.FTPPath, "/")
		if idx < 0 || idx == len(record.FTPPath)-1 {
			p.Failures = append(p.Failures, domain.FetchFailure{
				RemotePath: record.FTPPath,
				Reason:     ErrMalformedRemotePath.Error(),
			})
			continue
		}
		base := record.FTPPath[idx+1:]

		p.Tasks = append(p.Tasks, domain.FetchTask{
			RemotePath:  record.FTPPath,
			URL:         fmt.Sprintf("%s/%s_genomic.%s.gz", record.FTPPath, base, ext),
			Destination: filepath.Join(outDir, fmt.Sprintf("%s.%s.gz", base, ext)),
		})
	}

	return p
}
