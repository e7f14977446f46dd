package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/descendants/pkg/category"
)

// legendCommand prints the category colours.
func (c *CLI) legendCommand() *cobra.Command {
	var members bool
	cmd := &cobra.Command{
		Use:   "legend",
		Short: "Show what the node colours mean",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(stdout, StyleTitle.Render("Legend"))
			for _, e := range category.Legend() {
				fmt.Fprintf(stdout, "%s %s %s\n", swatch(e.Category), e.Label, StyleDim.Render(e.Color))
				if members {
					if names := category.Members(e.Category); len(names) > 0 {
						printDetail("%s", strings.Join(names, ", "))
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&members, "members", "m", false, "list the names in each category")
	return cmd
}
