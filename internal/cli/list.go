package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/simp-lee/alchemist/internal/domain"
	"github.com/simp-lee/alchemist/internal/module/article"
	"github.com/simp-lee/alchemist/paging"
)

const tabPadding = 2

type listOptions struct {
	page      string
	orm       string
	sort      string
	author    string
	titleLike string
}

func newListCmd(load configLoader) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of articles",
		Long: `Print one page of articles followed by the navigation line.
The page size comes from pagination.per_page in the configuration file.

A --page that is not an integer and a page past the last one both fail
with a non-zero exit status and their own message.`,
		Example: `  alchemist list --page 3
  alchemist list --orm bun --sort title:asc --author ada`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), load, opts)
		},
	}

	cmd.Flags().StringVar(&opts.page, "page", "1", "page number, 1-based")
	cmd.Flags().StringVar(&opts.orm, "orm", ormGorm, "query through gorm or bun")
	cmd.Flags().StringVar(&opts.sort, "sort", "id:desc", "field:asc|desc on id, title, author, created_at or updated_at")
	cmd.Flags().StringVar(&opts.author, "author", "", "only articles by this author")
	cmd.Flags().StringVar(&opts.titleLike, "title-like", "", "only titles containing this text")
	return cmd
}

func runList(ctx context.Context, out, logOut io.Writer, load configLoader, opts listOptions) error {
	page, err := paging.ParsePage(opts.page)
	if err != nil {
		return fmt.Errorf("malformed page %q: not an integer", opts.page)
	}

	cfg, err := load()
	if err != nil {
		return err
	}
	s, err := openStore(cfg, opts.orm, logOut)
	if err != nil {
		return err
	}
	defer s.Close()

	svc, err := article.NewArticleService(s.repo, cfg.Pagination.Paging())
	if err != nil {
		return err
	}

	filter := map[string]string{}
	if opts.author != "" {
		filter["author"] = opts.author
	}
	if opts.titleLike != "" {
		filter["title__like"] = opts.titleLike
	}

	p, err := svc.ListArticles(ctx, domain.ListQuery{Page: page, Sort: opts.sort, Filter: filter})
	if err != nil {
		var oor *paging.OutOfRangeError
		if errors.As(err, &oor) {
			return fmt.Errorf("page %d out of range: there are %d pages", oor.Page, oor.Pages)
		}
		return fmt.Errorf("list articles: %w", err)
	}

	return printPage(out, p)
}

// printPage writes the rows of p as a table followed by a summary and the
// navigation line.
func printPage(out io.Writer, p *paging.Page[domain.Article]) error {
	if p.Total == 0 {
		fmt.Fprintln(out, "No articles.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(w, "ID\tTitle\tAuthor\tCreated")
	fmt.Fprintln(w, "--\t-----\t------\t-------")
	for a := range p.All() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", a.ID, a.Title, a.Author, a.CreatedAt.Format("2006-01-02 15:04"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nPage %d of %d, items %d-%d of %d\n", p.Page, p.Pages, p.First, p.Last, p.Total)
	fmt.Fprintln(out, formatNav(p.Meta().Nav, p.Page))
	return nil
}
