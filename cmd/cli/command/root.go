package command

// root.go defines the root command for the reviewhub CLI and its global flags.

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"reviewhub/cmd/cli/authentication"
	"reviewhub/cmd/cli/command/client"
)

const defaultAPIURL = "http://localhost:8080/api/v1"

var apiURL string // global flag for the API root

var rootCmd = &cobra.Command{
	Use:   "reviewhub",
	Short: "reviewhub - command line client for the review API",
	Long: `reviewhub talks to the review API. Use it to:
- sign up and log in with an emailed confirmation code
- browse titles, categories and genres
- post, edit and delete reviews and comments

Use "reviewhub [command] --help" to see all available commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("REVIEWHUB_API", defaultAPIURL), "API root URL")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(titleCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(genreCmd)
}

// GetClient returns an anonymous client for public endpoints.
func GetClient() *client.HTTPClient {
	return client.NewHTTPClient(apiURL)
}

// GetAuthenticatedClient returns a client carrying the stored token.
func GetAuthenticatedClient() (*client.HTTPClient, error) {
	creds, err := authentication.GetToken()
	if err != nil {
		return nil, err
	}
	c := client.NewHTTPClient(apiURL)
	c.SetToken(creds.Token)
	return c, nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, 15*time.Second)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var (
	success = color.New(color.FgGreen).SprintFunc()
	dim     = color.New(color.FgHiBlack).SprintFunc()
	bold    = color.New(color.Bold).SprintFunc()
)

// ratingLabel colours a title rating; nil means no reviews yet.
func ratingLabel(rating *int) string {
	if rating == nil {
		return dim("no rating")
	}
	c := color.New(color.FgRed)
	switch {
	case *rating >= 8:
		c = color.New(color.FgGreen)
	case *rating >= 5:
		c = color.New(color.FgYellow)
	}
	return c.Sprintf("%d/10", *rating)
}

func printSuccess(format string, args ...any) {
	fmt.Println(success("✓ " + fmt.Sprintf(format, args...)))
}
