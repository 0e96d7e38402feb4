package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reviewhub/internal/microservices/http-api/dto"
)

var commentCmd = &cobra.Command{
	Use:     "comment",
	Aliases: []string{"comments"},
	Short:   "Comment commands",
	Long:    `List, add and delete comments on a review.`,
}

var listCommentsCmd = &cobra.Command{
	Use:   "list [title-id] [review-id]",
	Short: "List comments on a review",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, reviewID, err := reviewArgs(args)
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		comments, err := GetClient().ListComments(ctx, titleID, reviewID)
		if err != nil {
			return fmt.Errorf("failed to list comments: %w", err)
		}
		if len(comments) == 0 {
			fmt.Println("No comments yet.")
			return nil
		}
		for _, c := range comments {
			fmt.Printf("#%d  %s  %s\n    %s\n", c.ID, bold(c.Author), dim(c.PubDate.Format("2006-01-02 15:04")), c.Text)
		}
		return nil
	},
}

var addCommentCmd = &cobra.Command{
	Use:   "add [title-id] [review-id] [text...]",
	Short: "Comment on a review",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, reviewID, err := reviewArgs(args)
		if err != nil {
			return err
		}

		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		comment, err := c.CreateComment(ctx, titleID, reviewID, dto.CreateCommentDTO{Text: strings.Join(args[2:], " ")})
		if err != nil {
			return fmt.Errorf("failed to post comment: %w", err)
		}
		printSuccess("Comment #%d posted", comment.ID)
		return nil
	},
}

var deleteCommentCmd = &cobra.Command{
	Use:   "delete [title-id] [review-id] [comment-id]",
	Short: "Delete a comment",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, reviewID, err := reviewArgs(args)
		if err != nil {
			return err
		}
		commentID, err := parseID("comment", args[2])
		if err != nil {
			return err
		}

		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		if err := c.DeleteComment(ctx, titleID, reviewID, commentID); err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		printSuccess("Comment #%d deleted", commentID)
		return nil
	},
}

func reviewArgs(args []string) (titleID, reviewID int64, err error) {
	if titleID, err = parseID("title", args[0]); err != nil {
		return 0, 0, err
	}
	if reviewID, err = parseID("review", args[1]); err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

func init() {
	commentCmd.AddCommand(listCommentsCmd)
	commentCmd.AddCommand(addCommentCmd)
	commentCmd.AddCommand(deleteCommentCmd)
}
