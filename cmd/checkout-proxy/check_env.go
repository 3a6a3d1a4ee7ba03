package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/juanitaaa04/ethere-backend/internal/config"
	"github.com/spf13/cobra"
)

var errCredentialsMissing = errors.New("PayPal credentials are missing")

func checkEnvCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check-env",
		Short: "Report whether the PayPal credentials are configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*envFile)
			if err != nil {
				return err
			}
			return reportCredentials(cmd.OutOrStdout(), cfg.PayPal)
		},
	}
}

// reportCredentials prints loaded/missing for each credential, never the values.
func reportCredentials(w io.Writer, p config.PayPal) error {
	status := func(v string) string {
		if v == "" {
			return "missing"
		}
		return "loaded"
	}
	fmt.Fprintf(w, "PAYPAL_CLIENT_ID: %s\n", status(p.ClientID))
	fmt.Fprintf(w, "PAYPAL_SECRET: %s\n", status(p.ClientSecret))
	fmt.Fprintf(w, "PAYPAL_ENV: %s (%s)\n", p.Env, p.BaseURL)

	if p.ClientID == "" || p.ClientSecret == "" {
		return errCredentialsMissing
	}
	return nil
}
