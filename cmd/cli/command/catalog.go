package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"categories"},
	Short:   "Browse categories",
}

var listCategoriesCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		categories, err := GetClient().ListCategories(ctx, search)
		if err != nil {
			return fmt.Errorf("failed to get categories: %w", err)
		}
		if len(categories) == 0 {
			fmt.Println("No categories found.")
			return nil
		}
		for _, c := range categories {
			fmt.Printf("%-20s %s\n", c.Slug, c.Name)
		}
		return nil
	},
}

var genreCmd = &cobra.Command{
	Use:     "genre",
	Aliases: []string{"genres"},
	Short:   "Browse genres",
}

var listGenresCmd = &cobra.Command{
	Use:   "list",
	Short: "List genres",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		genres, err := GetClient().ListGenres(ctx, search)
		if err != nil {
			return fmt.Errorf("failed to get genres: %w", err)
		}
		if len(genres) == 0 {
			fmt.Println("No genres found.")
			return nil
		}

		fmt.Printf("Available genres (%d total):\n\n", len(genres))
		for _, g := range genres {
			fmt.Printf("%-20s %s\n", g.Slug, g.Name)
		}
		return nil
	},
}

func init() {
	categoryCmd.AddCommand(listCategoriesCmd)
	genreCmd.AddCommand(listGenresCmd)

	listCategoriesCmd.Flags().String("search", "", "Part of the category name")
	listGenresCmd.Flags().String("search", "", "Part of the genre name")
}
