package plan

import (
	"path/filepath"
	"testing"

	"ncbi/fetcher/internal/domain"
)

func TestBuildDerivation(t *testing.T) {
	records := []domain.Assembly{
		{TaxID: "10", FTPPath: "https://ftp.example/genomes/all/GCF_000005845.2_ASM584v2", AssemblyLevel: "Complete Genome"},
	}

	p := Build(records, domain.FormatFna, "out")
	if len(p.Tasks) != 1 || len(p.Failures) != 0 {
		t.Fatalf("got %d tasks, %d failures", len(p.Tasks), len(p.Failures))
	}

	task := p.Tasks[0]
	wantURL := "https://ftp.example/genomes/all/GCF_000005845.2_ASM584v2/GCF_000005845.2_ASM584v2_genomic.fna.gz"
	if task.URL != wantURL {
		t.Errorf("URL = %q, want %q", task.URL, wantURL)
	}
	wantDest := filepath.Join("out", "GCF_000005845.2_ASM584v2.fna.gz")
	if task.Destination != wantDest {
		t.Errorf("Destination = %q, want %q", task.Destination, wantDest)
	}
	if task.RemotePath != records[0].FTPPath {
		t.Errorf("RemotePath = %q, want %q", task.RemotePath, records[0].FTPPath)
	}
}

func TestBuildFormats(t *testing.T) {
	record := domain.Assembly{FTPPath: "https://ftp.example/GCF_1"}

	tests := []struct {
		format   domain.AssemblyFormat
		wantURL  string
		wantDest string
	}{
		{domain.FormatFna, "https://ftp.example/GCF_1/GCF_1_genomic.fna.gz", "GCF_1.fna.gz"},
		{domain.FormatFaa, "https://ftp.example/GCF_1/GCF_1_genomic.faa.gz", "GCF_1.faa.gz"},
		{domain.FormatGbff, "https://ftp.example/GCF_1/GCF_1_genomic.gbff.gz", "GCF_1.gbff.gz"},
		{domain.FormatGff, "https://ftp.example/GCF_1/GCF_1_genomic.gff.gz", "GCF_1.gff.gz"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			p := Build([]domain.Assembly{record}, tt.format, ".")
			if len(p.Tasks) != 1 {
				t.Fatalf("got %d tasks", len(p.Tasks))
			}
			if p.Tasks[0].URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", p.Tasks[0].URL, tt.wantURL)
			}
			if p.Tasks[0].Destination != filepath.Join(".", tt.wantDest) {
				t.Errorf("Destination = %q, want %q", p.Tasks[0].Destination, tt.wantDest)
			}
		})
	}
}

func TestBuildMalformedRemotePath(t *testing.T) {
	records := []domain.Assembly{
		{TaxID: "10", FTPPath: "https://ftp.example/GCF_1"},
		{TaxID: "10", FTPPath: "noslash"},
		{TaxID: "10", FTPPath: "https://ftp.example/GCF_2"},
		{TaxID: "10", FTPPath: "https://ftp.example/trailing/"},
	}

	p := Build(records, domain.FormatFna, ".")
	if len(p.Tasks) != 2 {
		t.Fatalf("got %d tasks, want 2 (bad records must not block the rest)", len(p.Tasks))
	}
	if len(p.Failures) != 2 {
		t.Fatalf("got %d failures, want 2", len(p.Failures))
	}
	for _, failure := range p.Failures {
		if failure.Reason != ErrMalformedRemotePath.Error() {
			t.Errorf("Reason = %q, want %q", failure.Reason, ErrMalformedRemotePath.Error())
		}
	}
	if p.Failures[0].RemotePath != "noslash" {
		t.Errorf("Failures[0].RemotePath = %q, want noslash", p.Failures[0].RemotePath)
	}
}

func TestBuildEmpty(t *testing.T) {
	p := Build(nil, domain.FormatFna, ".")
	if len(p.Tasks) != 0 || len(p.Failures) != 0 {
		t.Errorf("empty input produced %d tasks, %d failures", len(p.Tasks), len(p.Failures))
	}
}
