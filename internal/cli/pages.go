package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simp-lee/alchemist/paging"
)

type pagesOptions struct {
	current    int
	total      int
	onEdges    int
	onEachSide int
}

func newPagesCmd() *cobra.Command {
	var opts pagesOptions

	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Print the ellipsized page range for a position",
		Long: `Print the page numbers a navigation bar shows for --current out of --total pages.
The current page is bracketed and omitted runs are shown as "…".`,
		Example: `  alchemist pages --current 6 --total 20
  alchemist pages --current 1 --total 50 --on-edges 1 --on-each-side 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.total < 0 {
				return fmt.Errorf("--total must be >= 0, got %d", opts.total)
			}
			nav := paging.PageNumbers(opts.current, opts.total, paging.Window{
				OnEdges:    opts.onEdges,
				OnEachSide: opts.onEachSide,
			})
			fmt.Fprintln(cmd.OutOrStdout(), formatNav(nav, opts.current))
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.current, "current", 1, "current page number")
	cmd.Flags().IntVar(&opts.total, "total", 0, "total number of pages")
	cmd.Flags().IntVar(&opts.onEdges, "on-edges", paging.DefaultWindow.OnEdges, "pages always shown at each end")
	cmd.Flags().IntVar(&opts.onEachSide, "on-each-side", paging.DefaultWindow.OnEachSide, "pages shown on each side of the current page")
	_ = cmd.MarkFlagRequired("total")
	return cmd
}

// formatNav joins nav with spaces, bracketing current and printing gaps as "…".
// An empty range prints as "(no pages)".
func formatNav(nav []paging.PageNumber, current int) string {
	if len(nav) == 0 {
		return "(no pages)"
	}
	parts := make([]string, len(nav))
	for i, n := range nav {
		switch {
		case n.IsGap():
			parts[i] = n.String()
		case n.Int() == current:
			parts[i] = "[" + strconv.Itoa(n.Int()) + "]"
		default:
			parts[i] = n.String()
		}
	}
	return strings.Join(parts, " ")
}
