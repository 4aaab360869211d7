package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/omchainkit/omchain/api"
	"github.com/omchainkit/omchain/config"
	"github.com/omchainkit/omchain/logger"
	"github.com/omchainkit/omchain/metrics"
	"github.com/omchainkit/omchain/wallet"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "1.0.0"

	cfgFile     string
	apiURLFlag  string
	verboseFlag bool
)

// set up for every command run in setup
var (
	cfg       *config.Config
	log       *zap.Logger
	client    *api.Client
	store     *wallet.Store
	registry  *prometheus.Registry
	collector *metrics.Collector
	input     *bufio.Reader
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "omchain",
	Short: "A command-line client for the Omnicha.in OMC wallet",
	Long: `omchain talks to the Omnicha.in hosted wallet API. It shows network
information and balances, and manages a hosted OMC account: addresses,
message signing and payments.

Features:
  • Network info, rich list and wallet statistics
  • Address validation and message verification
  • Mining earnings calculator
  • Hosted account registration and login
  • Sending OMC with confirmation
  • Transaction history and CSV/JSON export

Security:
  • Passwords are only sent as SHA-512 hashes
  • Saved credentials are kept in an encrypted vault
  • Sessions expire after 30 minutes by default

Examples:
  omchain info                          # Network information
  omchain login alice                   # Sign in and save the account
  omchain balance                       # Balances of your addresses
  omchain send oGxg7S7s... 1.5          # Send 1.5 OMC
  omchain endpoint http://localhost/api # Use another API endpoint`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.omchain/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "wallet API endpoint")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(richListCmd)
	rootCmd.AddCommand(earningsCmd)
	rootCmd.AddCommand(checkAddressCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(unlockCmd)
	rootCmd.AddCommand(lockCmd)
	rootCmd.AddCommand(walletCmd)
	rootCmd.AddCommand(addressesCmd)
	rootCmd.AddCommand(newAddressCmd)
	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(transactionsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(changeEmailCmd)
	rootCmd.AddCommand(changePasswordCmd)
	rootCmd.AddCommand(endpointCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "omchain v%s\n", version)
	},
}

// setup loads the config and builds the logger, client and store for a command
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}
	if apiURLFlag != "" {
		cfg.APIURL = apiURLFlag
	}

	level := cfg.LogLevel
	if verboseFlag {
		level = "debug"
	}
	log, err = logger.New(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	registry = prometheus.NewRegistry()
	collector, err = metrics.NewCollector(registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	client = api.NewClient(
		api.WithBaseURL(cfg.APIURL),
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(log),
		api.WithMetrics(collector),
		api.WithUserAgent("omchain-cli/"+version),
	)
	store = wallet.NewStore(cfg.DataDir, cfg.SessionDuration)
	input = bufio.NewReader(cmd.InOrStdin())

	log.Debug("config loaded",
		zap.String("api_url", cfg.APIURL),
		zap.Duration("timeout", cfg.Timeout),
		zap.String("data_dir", cfg.DataDir))
	return nil
}

// teardown logs the API calls made by the command
func teardown(cmd *cobra.Command, args []string) error {
	defer log.Sync() //nolint:errcheck

	families, err := registry.Gather()
	if err != nil {
		log.Debug("failed to gather metrics", zap.Error(err))
		return nil
	}
	for _, mf := range families {
		if mf.GetName() != "omchain_api_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			fields := []zap.Field{zap.Float64("count", m.GetCounter().GetValue())}
			for _, l := range m.GetLabel() {
				fields = append(fields, zap.String(l.GetName(), l.GetValue()))
			}
			log.Debug("api requests", fields...)
		}
	}
	return nil
}
