package cmd

import (
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"ledgerscan/config"
	"ledgerscan/exception"
	"ledgerscan/jsonrpc"
	"ledgerscan/logx"
	"ledgerscan/monitoring"
	"ledgerscan/scan"
	"ledgerscan/store"
)

var (
	serveConfigPath string
	serveTuningPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the transfer history JSON-RPC API",
	Run: func(cmd *cobra.Command, args []string) {
		runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "config/ledgerscan.yml", "Path to the service config file")
	serveCmd.Flags().StringVar(&serveTuningPath, "tuning", "", "Path to an optional scanner tuning .ini file")
}

func runServe() {
	cfg, err := config.LoadServiceConfig(serveConfigPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	scanCfg := config.DefaultScanConfig()
	if serveTuningPath != "" {
		scanCfg, err = config.LoadScanConfig(serveTuningPath)
		if err != nil {
			log.Fatalf("Failed to load tuning config: %v", err)
		}
	}

	chain, err := store.OpenChainStore(&cfg.Store)
	if err != nil {
		log.Fatalf("Failed to open chain store: %v", err)
	}
	defer chain.Close()

	monitoring.InitMetrics()
	monitoring.SetLatestHeight(chain.LatestHeight())

	metricsMux := http.NewServeMux()
	monitoring.RegisterMetrics(metricsMux)
	exception.SafeGoWithPanic("metrics", func() {
		if err := http.ListenAndServe(cfg.Metrics.ListenAddr, metricsMux); err != nil {
			logx.Error("MONITORING", "Metrics server stopped: ", err)
		}
	})

	scanner := scan.NewTransferScanner(chain)
	server := jsonrpc.NewServer(cfg.RPC.ListenAddr, scanner, chain, scanCfg)
	exception.SafeGoWithPanic("jsonrpc", func() {
		if err := server.Start(); err != nil {
			logx.Error("JSONRPC", "RPC server stopped: ", err)
		}
	})

	logx.Info("SERVE", "ledgerscan is up, latest height ", chain.LatestHeight())

	// Block forever
	select {}
}
