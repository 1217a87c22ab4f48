package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "care-portal",
		Short: "Bilingual health platform and medical portal",
		Long: `care-portal serves the patient health platform and the doctor medical
portal. Each application has its own session cookie and signing secret, and
every page exists in Spanish and English.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := serveCmd()
	rootCmd.RunE = serve.RunE
	rootCmd.AddCommand(
		serve,
		routesCmd(),
		tokenCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}
