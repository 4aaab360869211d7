package cmd

import (
	"fmt"
	"net/url"

	"github.com/fatih/color"
	"github.com/omchainkit/omchain/api"
	"github.com/omchainkit/omchain/config"
	"github.com/spf13/cobra"
)

var endpointCmd = &cobra.Command{
	Use:   "endpoint [url]",
	Short: "Show or change the wallet API endpoint",
	Long: `Show the wallet API endpoint in use, or save a new one to the config file.

Examples:
  omchain endpoint                            # Show current endpoint
  omchain endpoint http://localhost:8080/api  # Use a local API
  omchain endpoint --reset                    # Back to the default endpoint`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEndpoint,
}

func init() {
	endpointCmd.Flags().Bool("reset", false, "Restore the default endpoint")
}

func runEndpoint(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	reset, _ := cmd.Flags().GetBool("reset")

	if len(args) == 0 && !reset {
		fmt.Fprintf(out, "🌐 Current endpoint: %s\n", color.GreenString(cfg.APIURL))
		if cfg.APIURL != api.DefaultBaseURL {
			fmt.Fprintf(out, "💡 Default endpoint: %s\n", api.DefaultBaseURL)
		}
		return nil
	}

	endpoint := api.DefaultBaseURL
	if len(args) == 1 {
		endpoint = args[0]
	}

	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: must be an http or https URL", endpoint)
	}

	if err := config.SaveAPIURL(cfgFile, endpoint); err != nil {
		return err
	}

	fmt.Fprintf(out, "🌐 Switched to %s\n", color.GreenString(endpoint))
	if u.Scheme == "http" {
		fmt.Fprintln(out, "⚠️  Warning: password hashes will be sent without TLS")
	}
	return nil
}
