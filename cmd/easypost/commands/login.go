package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/easypost-go/internal/constants"
	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var skipVerify bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an EasyPost API key",
		Long:  "Prompt for an API key, check it against the API and save it to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiKey := strings.TrimSpace(viper.GetString(keyAPIKey))
			if !cmd.Flags().Changed("api-key") {
				var err error

				apiKey, err = readAPIKey(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
			}

			if apiKey == "" {
				return ErrAPIKeyRequired
			}

			viper.Set(keyAPIKey, apiKey)

			if !skipVerify {
				client, err := CreateClient()
				if err != nil {
					return err
				}

				ctx, cancel := context.WithTimeout(commandContext(cmd), constants.ShortHTTPTimeout)
				defer cancel()

				_, err = client.Addresses().All(ctx, easypost.NewListParams().WithPageSize(1))
				if err != nil {
					return fmt.Errorf("failed to verify API key: %w", err)
				}
			}

			config, err := loadConfig()
			if err != nil {
				return err
			}

			config.APIKey = apiKey

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			writeLine(cmd.OutOrStdout(), "Saved API key %s to %s", maskSecret(apiKey), configFilePath())

			return nil
		},
	}

	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "save the key without calling the API")

	return cmd
}

// readAPIKey prompts on prompt and reads the key without echo when in is a terminal.
func readAPIKey(in io.Reader, prompt io.Writer) (string, error) {
	_, _ = fmt.Fprint(prompt, "API key: ")

	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		key, err := term.ReadPassword(int(file.Fd()))
		_, _ = fmt.Fprintln(prompt)

		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}

		return strings.TrimSpace(string(key)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}

	return strings.TrimSpace(line), nil
}
