package tree_test

import (
	"fmt"

	"github.com/matzehuels/descendants/pkg/tree"
)

func ExampleLocate() {
	adam := tree.New("Adam", tree.New("Seth", tree.New("Enosh")))

	seth := tree.Locate(adam, "seth")
	fmt.Println(seth.Name, tree.Count(seth))
	fmt.Println(tree.AncestorPath(adam, seth))
	fmt.Println(tree.Locate(adam, "Noah") == nil)
	// Output:
	// Seth 2
	// [Adam Seth]
	// true
}
