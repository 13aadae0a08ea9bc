package taxonomy

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTaxonNotFound means a taxon name matched nothing in the taxonomy.
	ErrTaxonNotFound = errors.New("no taxon matches the given name")

	// ErrAmbiguousName means a taxon name matched more than one taxon.
	ErrAmbiguousName = errors.New("taxon name is ambiguous")

	// ErrBadSelector means the id/name selector was not mutually exclusive.
	ErrBadSelector = errors.New("exactly one of taxon id or taxon name must be provided")
)

// Resolver turns a taxon id or display name into the descendant set used by
// the catalog filter.
type Resolver struct {
	tree *Tree
}

func NewResolver(tree *Tree) *Resolver {
	return &Resolver{tree: tree}
}

// Root resolves the selector to a single root taxon id. An explicit id is
// taken verbatim without an existence check; an unknown id simply matches
// nothing downstream. A name must match exactly one taxon.
func (r *Resolver) Root(taxID, taxName string) (string, error) {
	switch {
	case taxID != "" && taxName != "":
		return "", ErrBadSelector
	case taxID != "":
		return taxID, nil
	case taxName != "":
		matches := r.tree.FindAllByName(taxName)
		switch len(matches) {
		case 0:
			return "", fmt.Errorf("%w: %q", ErrTaxonNotFound, taxName)
		case 1:
			return matches[0], nil
		default:
			return "", fmt.Errorf("%w: %q matches tax IDs %s",
				ErrAmbiguousName, taxName, strings.Join(matches, ", "))
		}
	default:
		return "", ErrBadSelector
	}
}

// Resolve builds the immutable descendant set for the selector. The result
// always contains the root; with includeDescendants false it is exactly the
// root alone.
func (r *Resolver) Resolve(taxID, taxName string, includeDescendants bool) (map[string]struct{}, error) {
	root, err := r.Root(taxID, taxName)
	if err != nil {
		return nil, err
	}

	set := map[string]struct{}{root: {}}
	if includeDescendants {
		for _, id := range r.tree.Descendants(root) {
			set[id] = struct{}{}
		}
	}
	return set, nil
}
