// Package adapter provides the infrastructure seams around the coverage
// model: loading and saving coverage tree documents.
package adapter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	m "covtree.dev/pkg/covtree/internal/model"
)

// TreeStore reads and writes coverage tree documents. The document is this
// tool's own envelope: a direct serialization of the tree, produced by
// external report builders, not a third-party coverage format.
type TreeStore interface {
	// LoadTree decodes the document at path into a coverage tree.
	LoadTree(path string) (*m.Node, error)

	// SaveTree encodes the tree rooted at root into the document at path.
	SaveTree(path string, root *m.Node) error
}

// FileTreeStore is a TreeStore backed by the local filesystem. JSON is the
// default encoding; a .yaml or .yml extension selects YAML.
type FileTreeStore struct{}

// NewFileTreeStore constructs a FileTreeStore.
func NewFileTreeStore() *FileTreeStore {
	return &FileTreeStore{}
}

// treeDocument mirrors one node of the tree on disk.
type treeDocument struct {
	Metric   string         `json:"metric"             yaml:"metric"`
	Name     string         `json:"name"               yaml:"name"`
	Children []treeDocument `json:"children,omitempty" yaml:"children,omitempty"`
	Leaves   []leafDocument `json:"leaves,omitempty"   yaml:"leaves,omitempty"`
}

// leafDocument mirrors one leaf attachment on disk.
type leafDocument struct {
	Metric  string `json:"metric"  yaml:"metric"`
	Covered int64  `json:"covered" yaml:"covered"`
	Missed  int64  `json:"missed"  yaml:"missed"`
}

// LoadTree implements TreeStore.
func (s *FileTreeStore) LoadTree(path string) (*m.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree document: %w", err)
	}

	var document treeDocument
	if isYAMLPath(path) {
		err = yaml.Unmarshal(data, &document)
	} else {
		err = json.Unmarshal(data, &document)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode tree document %s: %w", path, err)
	}

	root, err := buildNode(document)
	if err != nil {
		return nil, fmt.Errorf("invalid tree document %s: %w", path, err)
	}

	slog.Debug("loaded tree document", "path", path, "root", root.String())

	return root, nil
}

// SaveTree implements TreeStore.
func (s *FileTreeStore) SaveTree(path string, root *m.Node) error {
	document := buildDocument(root)

	var (
		data []byte
		err  error
	)

	if isYAMLPath(path) {
		data, err = yaml.Marshal(document)
	} else {
		data, err = json.MarshalIndent(document, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("failed to encode tree document: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write tree document %s: %w", path, err)
	}

	slog.Debug("saved tree document", "path", path, "root", root.String())

	return nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}

	return false
}

// buildNode assembles a tree through the model's construction primitives,
// rejecting unknown metrics, structural leaf metrics and negative counts.
func buildNode(document treeDocument) (*m.Node, error) {
	metric, err := m.MetricFromName(document.Metric)
	if err != nil {
		return nil, err
	}

	node := m.NewNode(metric, document.Name)

	for _, leaf := range document.Leaves {
		leafMetric, err := m.MetricFromName(leaf.Metric)
		if err != nil {
			return nil, err
		}

		if leaf.Covered < 0 || leaf.Missed < 0 {
			return nil, fmt.Errorf("negative counter for %s leaf of %q", leafMetric, document.Name)
		}

		if err := node.AddLeaf(m.NewLeaf(leafMetric, m.NewCounter(leaf.Covered, leaf.Missed))); err != nil {
			return nil, fmt.Errorf("leaf of %q: %w", document.Name, err)
		}
	}

	for _, childDocument := range document.Children {
		child, err := buildNode(childDocument)
		if err != nil {
			return nil, err
		}

		if err := node.AddChild(child); err != nil {
			return nil, err
		}
	}

	return node, nil
}

func buildDocument(node *m.Node) treeDocument {
	document := treeDocument{
		Metric: node.Metric().String(),
		Name:   node.Name(),
	}

	for _, leaf := range node.Leaves() {
		document.Leaves = append(document.Leaves, leafDocument{
			Metric:  leaf.Metric().String(),
			Covered: leaf.Counter().Covered(),
			Missed:  leaf.Counter().Missed(),
		})
	}

	for _, child := range node.Children() {
		document.Children = append(document.Children, buildDocument(child))
	}

	return document
}
