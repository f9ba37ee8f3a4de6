package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// NewAddressesCommand creates the addresses command group
func NewAddressesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "addresses",
		Aliases: []string{"address", "addr"},
		Short:   "Manage addresses",
		Long:    "Create, verify and list EasyPost addresses",
	}

	cmd.AddCommand(newAddressesCreateCommand())
	cmd.AddCommand(newAddressesGetCommand())
	cmd.AddCommand(newAddressesListCommand())
	cmd.AddCommand(newAddressesVerifyCommand())

	return cmd
}

type addressFlags struct {
	name, company, street1, street2 string
	city, state, zip, country       string
	phone, email                    string
	residential                     bool
	verify, verifyStrict            []string
}

func addAddressFlags(cmd *cobra.Command, flags *addressFlags) {
	cmd.Flags().StringVar(&flags.name, "name", "", "addressee name")
	cmd.Flags().StringVar(&flags.company, "company", "", "company name")
	cmd.Flags().StringVar(&flags.street1, "street1", "", "first street line")
	cmd.Flags().StringVar(&flags.street2, "street2", "", "second street line")
	cmd.Flags().StringVar(&flags.city, "city", "", "city")
	cmd.Flags().StringVar(&flags.state, "state", "", "state or province")
	cmd.Flags().StringVar(&flags.zip, "zip", "", "postal code")
	cmd.Flags().StringVar(&flags.country, "country", "", "ISO country code")
	cmd.Flags().StringVar(&flags.phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&flags.email, "email", "", "email address")
	cmd.Flags().BoolVar(&flags.residential, "residential", false, "mark the address as residential")
	cmd.Flags().StringSliceVar(&flags.verify, "verify", nil, "verifications to run (e.g. delivery)")
	cmd.Flags().StringSliceVar(&flags.verifyStrict, "verify-strict", nil, "verifications that must pass")
}

func (f *addressFlags) params(cmd *cobra.Command) *easypost.AddressCreateParams {
	params := &easypost.AddressCreateParams{
		Name:         optionalString(cmd, "name", f.name),
		Company:      optionalString(cmd, "company", f.company),
		Street1:      optionalString(cmd, "street1", f.street1),
		Street2:      optionalString(cmd, "street2", f.street2),
		City:         optionalString(cmd, "city", f.city),
		State:        optionalString(cmd, "state", f.state),
		Zip:          optionalString(cmd, "zip", f.zip),
		Country:      optionalString(cmd, "country", f.country),
		Phone:        optionalString(cmd, "phone", f.phone),
		Email:        optionalString(cmd, "email", f.email),
		Verify:       f.verify,
		VerifyStrict: f.verifyStrict,
	}

	if cmd.Flags().Changed("residential") {
		params.Residential = easypost.Ptr(f.residential)
	}

	return params
}

func newAddressesCreateCommand() *cobra.Command {
	var (
		flags     addressFlags
		andVerify bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an address",
		Long:  "Create an address, optionally verifying it in the same call",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)
			params := flags.params(cmd)

			var address *easypost.Address
			if andVerify {
				address, err = client.Addresses().CreateAndVerify(ctx, params)
			} else {
				address, err = client.Addresses().Create(ctx, params)
			}

			if err != nil {
				return fmt.Errorf("failed to create address: %w", err)
			}

			return outputAddress(cmd.OutOrStdout(), address)
		},
	}

	addAddressFlags(cmd, &flags)
	cmd.Flags().BoolVar(&andVerify, "and-verify", false, "create and verify in one call, failing if verification fails")

	return cmd
}

func newAddressesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ADDRESS_ID",
		Short: "Get address details",
		Long:  "Display detailed information about a specific address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			address, err := client.Addresses().Retrieve(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get address: %w", err)
			}

			return outputAddress(cmd.OutOrStdout(), address)
		},
	}
}

func newAddressesVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify ADDRESS_ID",
		Short: "Verify an address",
		Long:  "Run delivery verification on an existing address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			address, err := client.Addresses().Verify(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to verify address: %w", err)
			}

			return outputAddress(cmd.OutOrStdout(), address)
		},
	}
}

func newAddressesListCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List addresses",
		Long:  "List addresses, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			addresses, hasMore, err := fetchList(commandContext(cmd), client.Addresses().All, &flags)
			if err != nil {
				return fmt.Errorf("failed to list addresses: %w", err)
			}

			return render(cmd.OutOrStdout(), addresses, func(w io.Writer) error {
				if len(addresses) == 0 {
					writeLine(w, "No addresses found")

					return nil
				}

				rows := make([][]string, 0, len(addresses))
				for _, address := range addresses {
					rows = append(rows, []string{address.ID, orNA(address.Name), formatStreet(&address), orNA(address.City), orNA(address.Zip), orNA(address.Country)})
				}

				err := renderTable(w, []string{"ID", "Name", "Street", "City", "Zip", "Country"}, rows)
				if err == nil && hasMore {
					writeLine(w, "More results available, use --before-id %s", addresses[len(addresses)-1].ID)
				}

				return err
			})
		},
	}

	addListFlags(cmd, &flags)

	return cmd
}

func outputAddress(w io.Writer, address *easypost.Address) error {
	return render(w, address, func(w io.Writer) error {
		delivery := NotAvailable
		if address.Verifications != nil && address.Verifications.Delivery != nil {
			delivery = "failed"
			if address.Verifications.Delivery.Success {
				delivery = "verified"
			}
		}

		return renderProperties(w, [][]string{
			{"ID", address.ID},
			{"Name", orNA(address.Name)},
			{"Company", orNA(address.Company)},
			{"Street", formatStreet(address)},
			{"City", orNA(address.City)},
			{"State", orNA(address.State)},
			{"Zip", orNA(address.Zip)},
			{"Country", orNA(address.Country)},
			{"Delivery Verification", delivery},
			{"Created", formatTime(address.CreatedAt)},
		})
	})
}

func formatStreet(address *easypost.Address) string {
	lines := make([]string, 0, 2)

	for _, line := range []string{address.Street1, address.Street2} {
		if line != "" {
			lines = append(lines, line)
		}
	}

	return orNA(strings.Join(lines, ", "))
}
