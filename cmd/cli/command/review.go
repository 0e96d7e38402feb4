package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"reviewhub/internal/microservices/http-api/dto"
)

var reviewCmd = &cobra.Command{
	Use:     "review",
	Aliases: []string{"reviews"},
	Short:   "Review commands",
	Long:    `List reviews of a title, and post, edit or delete your own.`,
}

var listReviewsCmd = &cobra.Command{
	Use:   "list [title-id]",
	Short: "List reviews of a title, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, err := parseID("title", args[0])
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		reviews, err := GetClient().ListReviews(ctx, titleID)
		if err != nil {
			return fmt.Errorf("failed to list reviews: %w", err)
		}
		if len(reviews) == 0 {
			fmt.Println("No reviews yet.")
			return nil
		}

		for _, r := range reviews {
			fmt.Printf("#%d  %s  %d/10  %s\n", r.ID, bold(r.Author), r.Score, dim(r.PubDate.Format("2006-01-02 15:04")))
			fmt.Printf("    %s\n\n", r.Text)
		}
		return nil
	},
}

var addReviewCmd = &cobra.Command{
	Use:   "add [title-id] [score] [text...]",
	Short: "Review a title (score 1-10)",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, err := parseID("title", args[0])
		if err != nil {
			return err
		}
		score, err := strconv.Atoi(args[1])
		if err != nil || score < 1 || score > 10 {
			return fmt.Errorf("score must be a whole number between 1 and 10")
		}

		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		review, err := c.CreateReview(ctx, titleID, dto.CreateReviewDTO{Text: strings.Join(args[2:], " "), Score: &score})
		if err != nil {
			return fmt.Errorf("failed to post review: %w", err)
		}
		printSuccess("Review #%d posted", review.ID)
		return nil
	},
}

var editReviewCmd = &cobra.Command{
	Use:   "edit [title-id] [review-id]",
	Short: "Edit the text or score of a review",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, err := parseID("title", args[0])
		if err != nil {
			return err
		}
		reviewID, err := parseID("review", args[1])
		if err != nil {
			return err
		}

		var req dto.UpdateReviewDTO
		if cmd.Flags().Changed("text") {
			text, _ := cmd.Flags().GetString("text")
			req.Text = &text
		}
		if cmd.Flags().Changed("score") {
			score, _ := cmd.Flags().GetInt("score")
			req.Score = &score
		}
		if req.Text == nil && req.Score == nil {
			return fmt.Errorf("nothing to change, pass --text or --score")
		}

		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		review, err := c.UpdateReview(ctx, titleID, reviewID, req)
		if err != nil {
			return fmt.Errorf("failed to edit review: %w", err)
		}
		printSuccess("Review #%d updated (%d/10)", review.ID, review.Score)
		return nil
	},
}

var deleteReviewCmd = &cobra.Command{
	Use:   "delete [title-id] [review-id]",
	Short: "Delete a review",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, err := parseID("title", args[0])
		if err != nil {
			return err
		}
		reviewID, err := parseID("review", args[1])
		if err != nil {
			return err
		}

		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		if err := c.DeleteReview(ctx, titleID, reviewID); err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}
		printSuccess("Review #%d deleted", reviewID)
		return nil
	},
}

func init() {
	reviewCmd.AddCommand(listReviewsCmd)
	reviewCmd.AddCommand(addReviewCmd)
	reviewCmd.AddCommand(editReviewCmd)
	reviewCmd.AddCommand(deleteReviewCmd)

	editReviewCmd.Flags().String("text", "", "New review text")
	editReviewCmd.Flags().Int("score", 0, "New score (1-10)")
}
