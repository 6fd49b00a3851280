package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/installmart/internal/cli"
	"github.com/Veraticus/installmart/internal/common"
	"github.com/Veraticus/installmart/internal/session"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the saved login token",
		Long: `Manage the bearer token used for your applications, reviews and dashboard.

Sign in on the InstallMart website, copy your token and save it with
'installmart auth login'. The token is cleared automatically when the
server rejects it.`,
	}

	cmd.AddCommand(authLoginCmd())
	cmd.AddCommand(authLogoutCmd())
	cmd.AddCommand(authStatusCmd())

	return cmd
}

func authLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save a login token",
		RunE:  runAuthLogin,
	}
	cmd.Flags().String("token", "", "token to save (prompted for when omitted)")
	return cmd
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	token, _ := cmd.Flags().GetString("token")

	return withEnv(cmd, func(ctx context.Context, e *env) error {
		out := cmd.OutOrStdout()
		if strings.TrimSpace(token) == "" {
			reader := cli.NewNonBlockingReader(cmd.InOrStdin())
			answer, err := reader.Prompt(ctx, out, "Paste your token")
			if err != nil {
				return err
			}
			token = answer
		}

		token = strings.TrimPrefix(strings.TrimSpace(token), "Bearer ")
		if token == "" {
			return common.NewUserError("No token given", common.ErrMissingConfig)
		}

		if err := e.store.SaveToken(ctx, token); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
		fmt.Fprintln(out, cli.FormatSuccess("Token saved"))

		claims, err := session.Inspect(token)
		switch {
		case err != nil:
			fmt.Fprintln(out, cli.FormatWarning("The token is not a JWT, it was saved as is."))
		case claims.Expired(time.Now()):
			fmt.Fprintln(out, cli.FormatWarning("The token has already expired, the server will reject it."))
		}
		return nil
	})
}

func authLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved login token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				if err := e.store.DeleteToken(ctx); err != nil {
					return fmt.Errorf("failed to delete token: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Logged out"))
				return nil
			})
		},
	}
}

func authStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a login token is saved",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, func(ctx context.Context, e *env) error {
				token, err := e.store.Token(ctx)
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}
				out := cmd.OutOrStdout()
				if token == "" {
					fmt.Fprintln(out, cli.FormatInfo("Not logged in. Run 'installmart auth login' to save a token."))
					return nil
				}
				fmt.Fprintln(out, cli.FormatSuccess("Logged in"))
				field(out, "Token", maskToken(token))
				field(out, "Backend", e.settings.BaseURL)
				writeClaims(out, token, time.Now())
				return nil
			})
		},
	}
}

// writeClaims shows who the token belongs to and when it expires.
func writeClaims(out io.Writer, token string, now time.Time) {
	claims, err := session.Inspect(token)
	if err != nil {
		return
	}
	field(out, "User", strings.TrimSpace(claims.Name+" "+claims.User()))
	field(out, "Email", claims.Email)
	exp := claims.Expiry()
	if exp.IsZero() {
		return
	}
	if claims.Expired(now) {
		fmt.Fprintln(out, cli.FormatWarning("Token expired on "+exp.Local().Format("2006-01-02 15:04")))
		return
	}
	field(out, "Expires", exp.Local().Format("2006-01-02 15:04"))
}

// savedUser returns the user ID in the saved token, or "" when there is none.
func savedUser(ctx context.Context, e *env) string {
	token, err := e.store.Token(ctx)
	if err != nil || token == "" {
		return ""
	}
	claims, err := session.Inspect(token)
	if err != nil {
		return ""
	}
	return claims.User()
}

// maskToken keeps only the first and last four characters.
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("•", len(token))
	}
	return token[:4] + strings.Repeat("•", 8) + token[len(token)-4:]
}
