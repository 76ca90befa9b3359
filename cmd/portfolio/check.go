package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/iamLuCat/portfolio/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the portfolio data and configuration",
	Long: `Loads and validates the portfolio data, prints the resolved configuration
with secrets masked and reports whether the contact form can send mail.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return checkSite(cfg, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func checkSite(cfg *config.Config, out io.Writer) error {
	d, err := cfg.LoadPortfolio()
	if err != nil {
		return fmt.Errorf("portfolio data is invalid: %w", err)
	}
	fmt.Fprintf(out, "Portfolio data OK: %d projects, %d experiences\n", len(d.Projects), len(d.Experiences))
	fmt.Fprintf(out, "Config: %s\n", cfg)

	if cfg.RelayReady() {
		fmt.Fprintln(out, "Email relay: configured")
	} else {
		fmt.Fprintln(out, "Email relay: NOT configured, contact submissions will fail")
	}

	switch {
	case cfg.Recaptcha.SiteKey == "":
		fmt.Fprintln(out, "reCAPTCHA: no site key, the widget will not load")
	case cfg.Recaptcha.SecretKey == "":
		fmt.Fprintln(out, "reCAPTCHA: widget only, tokens are not verified server-side")
	default:
		fmt.Fprintln(out, "reCAPTCHA: widget and server-side verification")
	}
	return nil
}
