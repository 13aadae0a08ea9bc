package taxonomy

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	nodesFile = "nodes.dmp"
	namesFile = "names.dmp"

	scientificNameClass = "scientific name"
)

// Tree is the taxonomy loaded from an extracted NCBI taxdump directory.
// Parent/child links are stored as identifier strings; descendant queries
// walk a child index iteratively, so deep lineages never recurse.
type Tree struct {
	parent     map[string]string
	children   map[string][]string
	scientific map[string]string
	byName     map[string][]string
	count      int
}

// Load reads nodes.dmp and names.dmp from dir.
func Load(dir string) (*Tree, error) {
	t := &Tree{
		parent:     make(map[string]string, 1000000),
		children:   make(map[string][]string, 1000000),
		scientific: make(map[string]string, 1000000),
		byName:     make(map[string][]string, 1000000),
	}

	if err := t.loadNodes(filepath.Join(dir, nodesFile)); err != nil {
		return nil, err
	}
	if err := t.loadNames(filepath.Join(dir, namesFile)); err != nil {
		return nil, err
	}

	log.Debugf("Loaded taxonomy: %d nodes, %d named taxa", t.count, len(t.scientific))
	return t, nil
}

func (t *Tree) loadNodes(path string) error {
	return eachDumpRow(path, 2, func(fields []string) {
		id, parent := fields[0], fields[1]
		t.count++
		t.parent[id] = parent
		// the root node lists itself as its own parent
		if parent != id {
			t.children[parent] = append(t.children[parent], id)
		}
	})
}

func (t *Tree) loadNames(path string) error {
	return eachDumpRow(path, 4, func(fields []string) {
		id, name, class := fields[0], fields[1], fields[3]
		if class == scientificNameClass {
			t.scientific[id] = name
		}
		t.byName[name] = append(t.byName[name], id)
	})
}

// eachDumpRow streams a .dmp file, splitting each row on the taxdump
// "\t|\t" field separator and trimming the trailing "\t|".
func eachDumpRow(path string, minFields int, fn func(fields []string)) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to open taxonomy dump file %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\t|")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t|\t")
		if len(fields) < minFields {
			return fmt.Errorf("malformed row in %s: %q", path, scanner.Text())
		}
		fn(fields)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return t.count
}

// Name returns the scientific name of id, or "" when unknown.
func (t *Tree) Name(id string) string {
	return t.scientific[id]
}

// FindAllByName returns the ids of every taxon carrying the exact name, in
// sorted order. Any name class matches, not only scientific names.
func (t *Tree) FindAllByName(name string) []string {
	ids := t.byName[name]
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Descendants returns every taxon id transitively below root, excluding root
// itself. Traversal is breadth-first over the child index; a visited set
// guards against cycles from malformed dump data.
func (t *Tree) Descendants(root string) []string {
	var out []string
	visited := map[string]struct{}{root: {}}
	queue := append([]string(nil), t.children[root]...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}
		out = append(out, id)
		queue = append(queue, t.children[id]...)
	}
	return out
}
