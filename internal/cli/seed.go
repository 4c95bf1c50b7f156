package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simp-lee/alchemist/internal/module/article"
)

const defaultSeedCount = 95

func newSeedCmd(load configLoader) *cobra.Command {
	var (
		count int
		orm   string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the article table and insert sample articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			s, err := openStore(cfg, orm, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			if err := s.migrate(ctx); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			svc, err := article.NewArticleService(s.repo, cfg.Pagination.Paging())
			if err != nil {
				return err
			}
			if err := svc.Seed(ctx, count); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d articles.\n", count)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", defaultSeedCount, "number of articles to insert")
	cmd.Flags().StringVar(&orm, "orm", ormGorm, "insert through gorm or bun")
	return cmd
}
