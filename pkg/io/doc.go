// Package io reads and writes genealogy trees.
//
// # Overview
//
// Trees are nested name/children documents. The same shape is accepted in
// three encodings so that a family tree can be hand-maintained in whatever
// format is most comfortable:
//
//	{"name": "Adam", "children": [{"name": "Seth", "children": [{"name": "Enosh"}]}]}
//
//	name: Adam
//	children:
//	  - name: Seth
//	    children:
//	      - name: Enosh
//
//	name = "Adam"
//	[[children]]
//	name = "Seth"
//	  [[children.children]]
//	  name = "Enosh"
//
// # Fields
//
// Required:
//   - name: display name, also the search key
//
// Optional:
//   - children: ordered list of child nodes (order drives layout and ids)
//
// # Validation
//
// Every reader runs [tree.Validate] before returning, so callers never see a
// tree with empty names or nil children.
//
// # Usage
//
//	root, err := io.ImportFile("family.yaml")   // format from extension
//	root, err := io.Read(r, io.FormatTOML)      // explicit format
//	err = io.ExportFile(root, "family.toml")    // format from extension
//
// [tree.Validate]: github.com/matzehuels/descendants/pkg/tree.Validate
package io
