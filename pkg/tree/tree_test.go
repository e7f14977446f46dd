package tree

import (
	"errors"
	"testing"
)

func sample() *Node {
	return New("Adam",
		New("Cain", New("Enoch")),
		New("Abel"),
		New("Seth", New("Enosh", New("Kenan"))),
	)
}

func TestWalkPreOrder(t *testing.T) {
	var got []string
	var depths []int
	Walk(sample(), func(n *Node, depth int) bool {
		got = append(got, n.Name)
		depths = append(depths, depth)
		return true
	})

	want := []string{"Adam", "Cain", "Enoch", "Abel", "Seth", "Enosh", "Kenan"}
	wantDepths := []int{0, 1, 2, 1, 1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("visited %d nodes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("visit[%d] = %s, want %s", i, got[i], want[i])
		}
		if depths[i] != wantDepths[i] {
			t.Errorf("depth[%d] = %d, want %d", i, depths[i], wantDepths[i])
		}
	}
}

func TestWalkSkipSubtree(t *testing.T) {
	var got []string
	Walk(sample(), func(n *Node, _ int) bool {
		got = append(got, n.Name)
		return n.Name != "Seth"
	})
	for _, name := range got {
		if name == "Enosh" || name == "Kenan" {
			t.Errorf("visited %s inside a skipped subtree", name)
		}
	}
}

func TestCountAndHeight(t *testing.T) {
	tests := []struct {
		name       string
		root       *Node
		wantCount  int
		wantHeight int
	}{
		{"Nil", nil, 0, -1},
		{"Single", New("Adam"), 1, 0},
		{"Sample", sample(), 7, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.root); got != tt.wantCount {
				t.Errorf("Count() = %d, want %d", got, tt.wantCount)
			}
			if got := Height(tt.root); got != tt.wantHeight {
				t.Errorf("Height() = %d, want %d", got, tt.wantHeight)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	deep := New("root")
	cur := deep
	for i := 0; i <= MaxDepth; i++ {
		next := New("x")
		cur.Children = []*Node{next}
		cur = next
	}

	tests := []struct {
		name    string
		root    *Node
		wantErr error
	}{
		{"Valid", sample(), nil},
		{"Nil", nil, ErrNilRoot},
		{"EmptyName", New("Adam", New("")), ErrEmptyName},
		{"NilChild", &Node{Name: "Adam", Children: []*Node{nil}}, ErrNilNode},
		{"TooDeep", deep, ErrTooDeep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.root)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsLeaf(t *testing.T) {
	if !New("Abel").IsLeaf() {
		t.Error("Abel should be a leaf")
	}
	if sample().IsLeaf() {
		t.Error("Adam should not be a leaf")
	}
}
