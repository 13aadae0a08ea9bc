package domain

import (
	"fmt"
	"strings"
)

// AssemblyFormat selects which genomic file is fetched per assembly.
type AssemblyFormat string

func (f AssemblyFormat) String() string {
	return string(f)
}

const (
	FormatFna  AssemblyFormat = "fna"  // nucleotide FASTA
	FormatFaa  AssemblyFormat = "faa"  // protein FASTA
	FormatGbff AssemblyFormat = "gbff" // GenBank flat file
	FormatGff  AssemblyFormat = "gff"  // feature table
)

var Formats = []AssemblyFormat{
	FormatFna,
	FormatFaa,
	FormatGbff,
	FormatGff,
}

// Extension returns the file extension used in NCBI genomic file names.
func (f AssemblyFormat) Extension() string {
	return string(f)
}

func (f AssemblyFormat) GetFormatName() string {
	switch f {
	case FormatFna:
		return "nucleotide FASTA"
	case FormatFaa:
		return "protein FASTA"
	case FormatGbff:
		return "GenBank flat file"
	case FormatGff:
		return "feature table"
	default:
		return "Unknown"
	}
}

func ParseFormat(s string) (AssemblyFormat, error) {
	f := AssemblyFormat(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown assembly format %q", s)
}
