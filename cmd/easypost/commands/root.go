package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand builds the easypost command tree and binds its global flags to viper.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "easypost",
		Short: "EasyPost shipping API CLI",
		Long: `A command-line interface for the EasyPost shipping API.

This CLI covers addresses, shipments, batches, rates, reports and API keys,
and prints results as tables, JSON or YAML.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.easypost/config.yml)")
	flags.StringP("api-key", "k", "", "EasyPost API key")
	flags.String("base-url", "", "API host (default https://api.easypost.com)")
	flags.StringP("output", "o", OutputFormatTable, "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag(keyAPIKey, flags.Lookup("api-key"))
	_ = viper.BindPFlag(keyBaseURL, flags.Lookup("base-url"))
	_ = viper.BindPFlag(keyOutput, flags.Lookup("output"))
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))

	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewLoginCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewAddressesCommand())
	rootCmd.AddCommand(NewShipmentsCommand())
	rootCmd.AddCommand(NewBatchesCommand())
	rootCmd.AddCommand(NewRatesCommand())
	rootCmd.AddCommand(NewReportsCommand())
	rootCmd.AddCommand(NewAPIKeysCommand())

	return rootCmd
}
