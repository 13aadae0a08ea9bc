package taxonomy

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// writeDump writes a small taxdump fixture:
//
//	1 (root) ── 2 (Bacteria) ── 10 (Escherichia) ── 11
//	         │               └─ 20
//	         └─ 9 (Archaea)
//
// "Proteus" deliberately names both 11 and 20.
func writeDump(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	nodes := "" +
		"1\t|\t1\t|\tno rank\t|\n" +
		"2\t|\t1\t|\tsuperkingdom\t|\n" +
		"9\t|\t1\t|\tsuperkingdom\t|\n" +
		"10\t|\t2\t|\tgenus\t|\n" +
		"11\t|\t10\t|\tspecies\t|\n" +
		"20\t|\t2\t|\tgenus\t|\n"
	names := "" +
		"1\t|\troot\t|\t\t|\tscientific name\t|\n" +
		"2\t|\tBacteria\t|\t\t|\tscientific name\t|\n" +
		"2\t|\teubacteria\t|\t\t|\tsynonym\t|\n" +
		"9\t|\tArchaea\t|\t\t|\tscientific name\t|\n" +
		"10\t|\tEscherichia\t|\t\t|\tscientific name\t|\n" +
		"11\t|\tProteus\t|\t\t|\tscientific name\t|\n" +
		"20\t|\tProteus\t|\t\t|\tscientific name\t|\n"

	if err := os.WriteFile(filepath.Join(dir, "nodes.dmp"), []byte(nodes), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "names.dmp"), []byte(names), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func loadTestTree(t *testing.T) *Tree {
	t.Helper()
	tree, err := Load(writeDump(t))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return tree
}

func TestLoad(t *testing.T) {
	tree := loadTestTree(t)

	if tree.Len() != 6 {
		t.Errorf("Len() = %d, want 6", tree.Len())
	}
	if got := tree.Name("2"); got != "Bacteria" {
		t.Errorf("Name(2) = %q, want Bacteria", got)
	}
	if got := tree.Name("404"); got != "" {
		t.Errorf("Name(404) = %q, want empty", got)
	}
}

func TestDescendants(t *testing.T) {
	tree := loadTestTree(t)

	tests := []struct {
		root string
		want []string
	}{
		{"2", []string{"10", "11", "20"}},
		{"10", []string{"11"}},
		{"11", nil},
		{"404", nil},
		// the root's self-parent link must not loop
		{"1", []string{"10", "11", "2", "20", "9"}},
	}

	for _, tt := range tests {
		t.Run(tt.root, func(t *testing.T) {
			got := tree.Descendants(tt.root)
			sort.Strings(got)
			if len(got) != len(tt.want) {
				t.Fatalf("Descendants(%s) = %v, want %v", tt.root, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Descendants(%s) = %v, want %v", tt.root, got, tt.want)
				}
			}
		})
	}
}

func TestFindAllByName(t *testing.T) {
	tree := loadTestTree(t)

	tests := []struct {
		name string
		want []string
	}{
		{"Bacteria", []string{"2"}},
		{"eubacteria", []string{"2"}}, // synonyms match too
		{"Proteus", []string{"11", "20"}},
		{"bacteria", nil}, // exact match, no case folding
		{"Fungi", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tree.FindAllByName(tt.name)
			if len(got) != len(tt.want) {
				t.Fatalf("FindAllByName(%q) = %v, want %v", tt.name, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("FindAllByName(%q) = %v, want %v", tt.name, got, tt.want)
				}
			}
		})
	}
}

func TestLoadMissingDir(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error loading from a missing directory")
	}
}
