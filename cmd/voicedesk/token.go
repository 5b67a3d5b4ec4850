package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	pkgauth "github.com/matiasleandrokruk/voicedesk/pkg/auth"
)

var errNoJWTSecret = errors.New("admin.jwt_secret is not configured (set VOICEDESK_JWT_SECRET)")

func tokenCmd(a *app) *cobra.Command {
	var subject string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin JWT for the /admin routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Admin.JWTSecret == "" {
				return errNoJWTSecret
			}
			expiry := time.Duration(cfg.Admin.JWTExpiryHours) * time.Hour
			token, err := pkgauth.GenerateJWT([]byte(cfg.Admin.JWTSecret), subject, expiry)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, token)
			return err
		},
	}
	cmd.Flags().StringVarP(&subject, "subject", "s", "admin", "subject claim of the token")
	return cmd
}

// hashSecretCmd reads the secret from the argument or the first line of stdin.
func hashSecretCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-secret [secret]",
		Short: "Print the bcrypt hash of a webhook secret for webhook.secret_hash",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var secret string
			if len(args) == 1 {
				secret = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read secret from stdin: %w", err)
				}
				secret = strings.TrimRight(line, "\r\n")
			}
			if secret == "" {
				return errors.New("secret must not be empty")
			}
			hash, err := pkgauth.HashSecret(secret)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, hash)
			return err
		},
	}
}
