package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// NewRatesCommand creates the rates command group
func NewRatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rates",
		Aliases: []string{"rate"},
		Short:   "Inspect rates",
		Long:    "Look up individual shipping rates",
	}

	cmd.AddCommand(newRatesGetCommand())

	return cmd
}

func newRatesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get RATE_ID",
		Short: "Get rate details",
		Long:  "Display a single rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			rate, err := client.Rates().Retrieve(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get rate: %w", err)
			}

			return outputRate(cmd.OutOrStdout(), rate)
		},
	}
}

func outputRate(w io.Writer, rate *easypost.Rate) error {
	return render(w, rate, func(w io.Writer) error {
		return renderProperties(w, [][]string{
			{"ID", rate.ID},
			{"Carrier", rate.Carrier},
			{"Service", rate.Service},
			{"Rate", rate.Rate.String() + " " + rate.Currency},
			{"Delivery Days", formatDays(rate.DeliveryDays)},
			{"Shipment", orNA(rate.ShipmentID)},
		})
	})
}

func renderRates(w io.Writer, rates []easypost.Rate) error {
	rows := make([][]string, 0, len(rates))
	for _, rate := range rates {
		rows = append(rows, []string{rate.ID, rate.Carrier, rate.Service, rate.Rate.String(), formatDays(rate.DeliveryDays)})
	}

	return renderTable(w, []string{"ID", "Carrier", "Service", "Rate", "Days"}, rows)
}

func outputSmartrates(w io.Writer, smartrates []easypost.Smartrate, accuracy easypost.SmartrateAccuracy) error {
	return render(w, smartrates, func(w io.Writer) error {
		if len(smartrates) == 0 {
			writeLine(w, "No smartrates found")

			return nil
		}

		rows := make([][]string, 0, len(smartrates))
		for _, smartrate := range smartrates {
			days, err := smartrate.TimeInTransit.DaysAt(accuracy)
			if err != nil {
				return err
			}

			rows = append(rows, []string{smartrate.ID, smartrate.Carrier, smartrate.Service, smartrate.Rate.Rate.String(), formatDays(days)})
		}

		return renderTable(w, []string{"ID", "Carrier", "Service", "Rate", "Days (" + string(accuracy) + ")"}, rows)
	})
}
