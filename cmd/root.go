package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"ledgerscan/logx"
)

var rootCmd = &cobra.Command{
	Use:   "ledgerscan",
	Short: "Ledger transfer history CLI",
	Long:  "Command line interface for serving and querying inter-account transfer history over a persisted ledger.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed:", err)
		os.Exit(1)
	}
}
