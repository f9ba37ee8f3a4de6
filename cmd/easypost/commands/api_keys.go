package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewAPIKeysCommand creates the api-keys command group
func NewAPIKeysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "api-keys",
		Aliases: []string{"keys"},
		Short:   "Inspect API keys",
		Long:    "List the API keys of the account (requires a production key)",
	}

	cmd.AddCommand(newAPIKeysListCommand())

	return cmd
}

func newAPIKeysListCommand() *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List API keys",
		Long:  "List the account's test and production API keys, masked unless --reveal is set",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			keys, err := client.APIKeys().All(commandContext(cmd))
			if err != nil {
				return fmt.Errorf("failed to list API keys: %w", err)
			}

			if !reveal {
				for i := range keys {
					keys[i].Key = maskSecret(keys[i].Key)
				}
			}

			return render(cmd.OutOrStdout(), keys, func(w io.Writer) error {
				rows := make([][]string, 0, len(keys))
				for _, key := range keys {
					rows = append(rows, []string{key.ID, orNA(key.Mode), key.Key, formatTime(key.CreatedAt)})
				}

				return renderTable(w, []string{"ID", "Mode", "Key", "Created"}, rows)
			})
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "print keys in full")

	return cmd
}
