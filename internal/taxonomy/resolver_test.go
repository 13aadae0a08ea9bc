package taxonomy

import (
	"errors"
	"testing"
)

func TestResolveNoChildren(t *testing.T) {
	resolver := NewResolver(loadTestTree(t))

	set, err := resolver.Resolve("2", "", false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(set) != 1 {
		t.Fatalf("expected exactly the root, got %d ids", len(set))
	}
	if _, ok := set["2"]; !ok {
		t.Error("root 2 missing from descendant set")
	}
}

func TestResolveWithDescendants(t *testing.T) {
	resolver := NewResolver(loadTestTree(t))

	set, err := resolver.Resolve("2", "", true)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if _, ok := set["2"]; !ok {
		t.Error("descendant set must contain its root")
	}
	for _, id := range []string{"10", "11", "20"} {
		if _, ok := set[id]; !ok {
			t.Errorf("descendant %s missing", id)
		}
	}
	if _, ok := set["9"]; ok {
		t.Error("sibling 9 must not be in the descendant set")
	}
}

func TestResolveUnknownIDVerbatim(t *testing.T) {
	resolver := NewResolver(loadTestTree(t))

	// an unknown explicit id is not an error; it just matches nothing later
	set, err := resolver.Resolve("424242", "", true)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(set) != 1 {
		t.Fatalf("expected singleton set for unknown id, got %d", len(set))
	}
	if _, ok := set["424242"]; !ok {
		t.Error("unknown id must round-trip verbatim")
	}
}

func TestResolveByName(t *testing.T) {
	resolver := NewResolver(loadTestTree(t))

	set, err := resolver.Resolve("", "Bacteria", false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if _, ok := set["2"]; !ok {
		t.Error("name Bacteria should resolve to tax ID 2")
	}
}

func TestResolveNameErrors(t *testing.T) {
	resolver := NewResolver(loadTestTree(t))

	tests := []struct {
		name    string
		taxID   string
		taxName string
		want    error
	}{
		{"not found", "", "Fungi", ErrTaxonNotFound},
		{"ambiguous", "", "Proteus", ErrAmbiguousName},
		{"both set", "2", "Bacteria", ErrBadSelector},
		{"neither set", "", "", ErrBadSelector},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Resolve(tt.taxID, tt.taxName, true)
			if !errors.Is(err, tt.want) {
				t.Errorf("Resolve(%q, %q) error = %v, want %v", tt.taxID, tt.taxName, err, tt.want)
			}
		})
	}
}
