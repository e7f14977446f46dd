package io

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/descendants/pkg/tree"
)

const (
	jsonTree = `{"name": "Adam", "children": [{"name": "Seth", "children": [{"name": "Enosh"}]}, {"name": "Abel"}]}`

	yamlTree = `name: Adam
children:
  - name: Seth
    children:
      - name: Enosh
  - name: Abel
`

	tomlTree = `name = "Adam"

[[children]]
name = "Seth"

  [[children.children]]
  name = "Enosh"

[[children]]
name = "Abel"
`
)

func TestRead(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"JSON", FormatJSON, jsonTree},
		{"YAML", FormatYAML, yamlTree},
		{"TOML", FormatTOML, tomlTree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Read(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if root.Name != "Adam" {
				t.Errorf("root = %s, want Adam", root.Name)
			}
			if got := tree.Count(root); got != 4 {
				t.Errorf("count = %d, want 4", got)
			}
			if root.Children[0].Name != "Seth" || root.Children[1].Name != "Abel" {
				t.Errorf("children out of order: %s, %s", root.Children[0].Name, root.Children[1].Name)
			}
			if root.Children[0].Children[0].Name != "Enosh" {
				t.Errorf("grandchild = %s, want Enosh", root.Children[0].Children[0].Name)
			}
		})
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		input   string
		wantErr error
	}{
		{"MalformedJSON", FormatJSON, `{"name":`, nil},
		{"EmptyName", FormatJSON, `{"name": "Adam", "children": [{"name": ""}]}`, tree.ErrEmptyName},
		{"NullChild", FormatJSON, `{"name": "Adam", "children": [null]}`, tree.ErrNilNode},
		{"MissingRootName", FormatYAML, "children: []\n", tree.ErrEmptyName},
		{"UnknownFormat", Format("xml"), `<a/>`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path   string
		want   Format
		wantOK bool
	}{
		{"tree.json", FormatJSON, true},
		{"tree.YAML", FormatYAML, true},
		{"tree.yml", FormatYAML, true},
		{"dir/tree.toml", FormatTOML, true},
		{"tree.xml", "", false},
		{"tree", "", false},
	}
	for _, tt := range tests {
		got, ok := FormatFromPath(tt.path)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("FormatFromPath(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestImportExportFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "family.yaml")
	if err := os.WriteFile(src, []byte(yamlTree), 0o644); err != nil {
		t.Fatal(err)
	}

	root, err := ImportFile(src)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}

	for _, name := range []string{"family.json", "family.yml", "family.toml"} {
		out := filepath.Join(dir, name)
		if err := ExportFile(root, out); err != nil {
			t.Fatalf("ExportFile(%s): %v", name, err)
		}
		again, err := ImportFile(out)
		if err != nil {
			t.Fatalf("re-import %s: %v", name, err)
		}
		if got, want := preorder(again), preorder(root); got != want {
			t.Errorf("%s round trip = %q, want %q", name, got, want)
		}
	}
}

func preorder(root *tree.Node) string {
	var names []string
	tree.Walk(root, func(n *tree.Node, _ int) bool {
		names = append(names, n.Name)
		return true
	})
	return strings.Join(names, ",")
}

func TestExportFileUnknownFormat(t *testing.T) {
	if err := ExportFile(tree.New("Adam"), filepath.Join(t.TempDir(), "family.xml")); err == nil {
		t.Error("expected error for unknown extension")
	}
	if err := Write(&bytes.Buffer{}, nil, FormatJSON); !errors.Is(err, tree.ErrNilRoot) {
		t.Errorf("Write(nil) = %v, want ErrNilRoot", err)
	}
}

func TestImportFileErrors(t *testing.T) {
	if _, err := ImportFile("missing.json"); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := ImportFile("family.xml"); err == nil {
		t.Error("expected error for unknown extension")
	}
}

func TestWriteJSONOmitsEmptyChildren(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(tree.New("Abel"), &buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "children") {
		t.Errorf("leaf should not serialize children: %s", buf.String())
	}
}
