package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"reviewhub/cmd/cli/authentication"
	"reviewhub/internal/microservices/http-api/dto"
)

// auth.go handles signup, login (code for token exchange), logout and whoami.

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long: `Sign up with a username and email, then log in with the confirmation
code that the server sends to that email.`,
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register, or get a new confirmation code",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.SignupRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.Email, _ = cmd.Flags().GetString("email")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		resp, err := GetClient().Signup(ctx, req)
		if err != nil {
			return fmt.Errorf("signup failed: %w", err)
		}

		printSuccess("Confirmation code sent to %s", resp.Email)
		fmt.Printf("Next: reviewhub auth login -u %s -c <code>\n", resp.Username)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Exchange a confirmation code for an access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.TokenRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.ConfirmationCode, _ = cmd.Flags().GetString("code")

		ctx, cancel := commandContext(cmd)
		defer cancel()

		resp, err := GetClient().Token(ctx, req)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		creds := &authentication.StoredCredentials{Token: resp.Token, Username: req.Username, APIURL: apiURL}
		if err := authentication.StoreToken(creds); err != nil {
			return fmt.Errorf("could not store token: %w", err)
		}
		printSuccess("Logged in as %s", req.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authentication.DeleteToken(); err != nil {
			return err
		}
		printSuccess("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}

		ctx, cancel := commandContext(cmd)
		defer cancel()

		me, err := c.Me(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s>  role: %s\n", bold(me.Username), me.Email, me.Role)
		if me.FirstName != "" || me.LastName != "" {
			fmt.Printf("Name: %s %s\n", me.FirstName, me.LastName)
		}
		if me.Bio != nil {
			fmt.Printf("Bio: %s\n", *me.Bio)
		}
		return nil
	},
}

func init() {
	authCmd.AddCommand(signupCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(whoamiCmd)

	signupCmd.Flags().StringP("username", "u", "", "Username for the account")
	signupCmd.Flags().StringP("email", "e", "", "Email address for the account")
	signupCmd.MarkFlagRequired("username")
	signupCmd.MarkFlagRequired("email")

	loginCmd.Flags().StringP("username", "u", "", "Username for the account")
	loginCmd.Flags().StringP("code", "c", "", "Confirmation code from the email")
	loginCmd.MarkFlagRequired("username")
	loginCmd.MarkFlagRequired("code")
}
