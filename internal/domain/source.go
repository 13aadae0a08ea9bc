package domain

import (
	"fmt"
	"strings"
)

// AssemblySource is the NCBI database an assembly summary is fetched from.
// SourceNone means the caller supplies a local summary file instead.
type AssemblySource string

func (s AssemblySource) String() string {
	return string(s)
}

const (
	SourceRefseq  AssemblySource = "refseq"
	SourceGenbank AssemblySource = "genbank"
	SourceNone    AssemblySource = "none"
)

var Sources = []AssemblySource{
	SourceRefseq,
	SourceGenbank,
	SourceNone,
}

// SummaryURL returns the ASSEMBLY_REPORTS summary URL for the source. The
// second return value is false for SourceNone.
func (s AssemblySource) SummaryURL() (string, bool) {
	switch s {
	case SourceRefseq:
		return "https://ftp.ncbi.nlm.nih.gov/genomes/ASSEMBLY_REPORTS/assembly_summary_refseq.txt", true
	case SourceGenbank:
		return "https://ftp.ncbi.nlm.nih.gov/genomes/ASSEMBLY_REPORTS/assembly_summary_genbank.txt", true
	default:
		return "", false
	}
}

func ParseSource(s string) (AssemblySource, error) {
	src := AssemblySource(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Sources {
		if src == known {
			return src, nil
		}
	}
	return "", fmt.Errorf("unknown assembly source %q", s)
}
