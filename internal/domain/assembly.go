package domain

// Assembly is one row of the NCBI assembly summary catalog. The taxon id is
// kept as an opaque string and must round-trip byte for byte; records are
// immutable once parsed.
type Assembly struct {
	TaxID         string `json:"taxid"`
	FTPPath       string `json:"ftp_path"`
	AssemblyLevel string `json:"assembly_level"`
}
