package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-care-portal/apps"
	"github.com/jrsteele09/go-care-portal/internal/config"
	"github.com/jrsteele09/go-care-portal/internal/utils"
	"github.com/jrsteele09/go-care-portal/sessions"
	"github.com/jrsteele09/go-care-portal/token"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign and inspect session tokens",
		Long: `Sign and inspect session tokens with the secrets of the current
environment. Useful to open protected pages during development.`,
	}
	cmd.AddCommand(tokenSignCmd(), tokenVerifyCmd())
	return cmd
}

func tokenSignCmd() *cobra.Command {
	var (
		appFlag  string
		payload  sessions.Payload
		withSess bool
	)

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Print a signed session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := apps.Parse(appFlag)
			if err != nil {
				return err
			}
			if payload.ID == "" {
				payload.ID = uuid.New().String()
			}
			if withSess {
				payload.SessionID = utils.Ptr(uuid.New().String())
			}

			c := config.New()
			signed, err := token.NewCodec(app, c.GetSigningSecret(app)).Sign(payload)
			if err != nil {
				return err
			}
			if c.IsDefaultSecret(app) {
				fmt.Fprintf(os.Stderr, "\033[33m⚠\033[0m signed with the development secret, set %s to change it\n", app.SecretEnvVar())
			}
			fmt.Printf("%s=%s\n", app.CookieName(), signed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&appFlag, "app", "a", apps.HealthPlatform.String(), "Application (health-platform, medical-portal)")
	cmd.Flags().StringVar(&payload.ID, "id", "", "User id (random when empty)")
	cmd.Flags().StringVar(&payload.Email, "email", "", "User email")
	cmd.Flags().StringVar(&payload.Name, "name", "", "First name")
	cmd.Flags().StringVar(&payload.LastName, "last-name", "", "Last name")
	cmd.Flags().BoolVar(&withSess, "session-id", true, "Include a session id")

	return cmd
}

func tokenVerifyCmd() *cobra.Command {
	var appFlag string

	cmd := &cobra.Command{
		Use:   "verify <token>",
		Short: "Verify a session token and print its payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := apps.Parse(appFlag)
			if err != nil {
				return err
			}
			c := config.New()
			payload, err := token.NewCodec(app, c.GetSigningSecret(app)).Verify(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		},
	}

	cmd.Flags().StringVarP(&appFlag, "app", "a", apps.HealthPlatform.String(), "Application (health-platform, medical-portal)")

	return cmd
}
