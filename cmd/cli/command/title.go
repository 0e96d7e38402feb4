package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"reviewhub/cmd/cli/command/client"
	"reviewhub/internal/microservices/http-api/dto"
)

var titleCmd = &cobra.Command{
	Use:     "title",
	Aliases: []string{"titles"},
	Short:   "Browse titles",
}

var listTitlesCmd = &cobra.Command{
	Use:   "list",
	Short: "List titles, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		var q client.TitleQuery
		q.Category, _ = cmd.Flags().GetString("category")
		q.Genre, _ = cmd.Flags().GetString("genre")
		q.Name, _ = cmd.Flags().GetString("name")
		q.Year, _ = cmd.Flags().GetInt("year")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		titles, err := GetClient().ListTitles(ctx, q)
		if err != nil {
			return fmt.Errorf("failed to list titles: %w", err)
		}
		if len(titles) == 0 {
			fmt.Println("No titles found.")
			return nil
		}

		fmt.Printf("Titles (%d total):\n\n", len(titles))
		for _, t := range titles {
			fmt.Printf("%4d  %s (%d)  %s\n", t.ID, bold(t.Name), t.Year, ratingLabel(t.Rating))
		}
		return nil
	},
}

var showTitleCmd = &cobra.Command{
	Use:   "show [title-id]",
	Short: "Show one title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("title", args[0])
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		t, err := GetClient().GetTitle(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get title: %w", err)
		}
		printTitle(t)
		return nil
	},
}

func printTitle(t *dto.TitleResponse) {
	fmt.Printf("%s (%d)\n", bold(t.Name), t.Year)
	fmt.Printf("Rating:   %s\n", ratingLabel(t.Rating))
	if t.Category != nil {
		fmt.Printf("Category: %s\n", t.Category.Name)
	}
	if len(t.Genre) > 0 {
		names := make([]string, 0, len(t.Genre))
		for _, g := range t.Genre {
			names = append(names, g.Name)
		}
		fmt.Printf("Genres:   %s\n", strings.Join(names, ", "))
	}
	if t.Description != nil {
		fmt.Printf("\n%s\n", *t.Description)
	}
}

func parseID(what, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID %q", what, raw)
	}
	return id, nil
}

func init() {
	titleCmd.AddCommand(listTitlesCmd)
	titleCmd.AddCommand(showTitleCmd)

	listTitlesCmd.Flags().String("category", "", "Category slug")
	listTitlesCmd.Flags().String("genre", "", "Genre slug")
	listTitlesCmd.Flags().String("name", "", "Part of the title name")
	listTitlesCmd.Flags().Int("year", 0, "Release year")
}
