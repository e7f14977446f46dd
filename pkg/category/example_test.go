package category_test

import (
	"fmt"

	"github.com/matzehuels/descendants/pkg/category"
)

func ExampleClassify() {
	fmt.Println(category.Classify("Levi", "Jacob (Israel)"))
	fmt.Println(category.Classify("Levi", ""))
	fmt.Println(category.Classify("David", "Jesse"))
	fmt.Println(category.Classify("Seth", "Adam").Color())
	// Output:
	// tribe
	// priestly
	// patriarch
	// #ffffff
}
