package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/simp-lee/alchemist/internal/domain"
	"github.com/simp-lee/alchemist/internal/pkg"
)

func newColumnsCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "Print the columns mapped for the article model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			s, err := openStore(cfg, ormGorm, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			columns, err := pkg.DescribeModel(s.gormDB, &domain.Article{})
			if err != nil {
				return err
			}
			return printColumns(cmd.OutOrStdout(), columns)
		},
	}
}

func printColumns(out io.Writer, columns []pkg.ColumnInfo) error {
	w := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(w, "Column\tField\tType\tPK\tNot Null\tUnique\tSize")
	for _, c := range columns {
		size := "-"
		if c.Size > 0 {
			size = strconv.Itoa(c.Size)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.Name, c.Field, c.Type, yesNo(c.PrimaryKey), yesNo(c.NotNull), yesNo(c.Unique), size)
	}
	return w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
