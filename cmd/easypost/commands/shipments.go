package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/easypost-go/internal/constants"
	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// NewShipmentsCommand creates the shipments command group
func NewShipmentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "shipments",
		Aliases: []string{"shipment", "shp"},
		Short:   "Manage shipments",
		Long:    "Inspect shipments, compare their rates and buy labels",
	}

	cmd.AddCommand(newShipmentsGetCommand())
	cmd.AddCommand(newShipmentsListCommand())
	cmd.AddCommand(newShipmentsBuyCommand())
	cmd.AddCommand(newShipmentsLowestRateCommand())
	cmd.AddCommand(newShipmentsSmartratesCommand())
	cmd.AddCommand(newShipmentsLabelCommand())
	cmd.AddCommand(newShipmentsRefundCommand())

	return cmd
}

type rateFilterFlags struct {
	carriers, services               []string
	excludeCarriers, excludeServices []string
}

func addRateFilterFlags(cmd *cobra.Command, flags *rateFilterFlags) {
	cmd.Flags().StringSliceVar(&flags.carriers, "carrier", nil, "only consider these carriers")
	cmd.Flags().StringSliceVar(&flags.services, "service", nil, "only consider these services")
	cmd.Flags().StringSliceVar(&flags.excludeCarriers, "exclude-carrier", nil, "ignore these carriers")
	cmd.Flags().StringSliceVar(&flags.excludeServices, "exclude-service", nil, "ignore these services")
}

func (f *rateFilterFlags) filter() easypost.RateFilter {
	return easypost.RateFilter{
		IncludeCarriers: f.carriers,
		IncludeServices: f.services,
		ExcludeCarriers: f.excludeCarriers,
		ExcludeServices: f.excludeServices,
	}
}

func newShipmentsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SHIPMENT_ID",
		Short: "Get shipment details",
		Long:  "Display a shipment with its rates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			shipment, err := client.Shipments().Retrieve(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get shipment: %w", err)
			}

			return outputShipment(cmd.OutOrStdout(), shipment)
		},
	}
}

func newShipmentsListCommand() *cobra.Command {
	var (
		flags     listFlags
		purchased bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shipments",
		Long:  "List shipments, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			fetch := client.Shipments().All
			if cmd.Flags().Changed("purchased") {
				fetch = func(ctx context.Context, params *easypost.ListParams) (*easypost.Collection[easypost.Shipment], error) {
					return client.Shipments().All(ctx, params.WithFilter("purchased", purchased))
				}
			}

			shipments, hasMore, err := fetchList(commandContext(cmd), fetch, &flags)
			if err != nil {
				return fmt.Errorf("failed to list shipments: %w", err)
			}

			return render(cmd.OutOrStdout(), shipments, func(w io.Writer) error {
				if len(shipments) == 0 {
					writeLine(w, "No shipments found")

					return nil
				}

				rows := make([][]string, 0, len(shipments))
				for _, shipment := range shipments {
					rows = append(rows, []string{
						shipment.ID,
						orNA(shipment.Reference),
						orNA(shipment.Status),
						orNA(shipment.TrackingCode),
						formatTime(shipment.CreatedAt),
					})
				}

				err := renderTable(w, []string{"ID", "Reference", "Status", "Tracking Code", "Created"}, rows)
				if err == nil && hasMore {
					writeLine(w, "More results available, use --before-id %s", shipments[len(shipments)-1].ID)
				}

				return err
			})
		},
	}

	addListFlags(cmd, &flags)
	cmd.Flags().BoolVar(&purchased, "purchased", false, "only purchased (true) or unpurchased (false) shipments")

	return cmd
}

func newShipmentsBuyCommand() *cobra.Command {
	var (
		rateID    string
		insurance string
		filter    rateFilterFlags
	)

	cmd := &cobra.Command{
		Use:   "buy SHIPMENT_ID",
		Short: "Buy a shipment",
		Long:  "Buy postage with --rate, or with the lowest rate matching the carrier and service filters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)

			if rateID == "" {
				shipment, err := client.Shipments().Retrieve(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get shipment: %w", err)
				}

				rate, err := shipment.LowestRate(filter.filter())
				if err != nil {
					return fmt.Errorf("failed to select rate: %w", err)
				}

				rateID = rate.ID
			}

			params := &easypost.ShipmentBuyParams{
				RateID:    easypost.Ptr(rateID),
				Insurance: optionalString(cmd, "insurance", insurance),
			}

			shipment, err := client.Shipments().Buy(ctx, args[0], params)
			if err != nil {
				return fmt.Errorf("failed to buy shipment: %w", err)
			}

			return outputShipment(cmd.OutOrStdout(), shipment)
		},
	}

	cmd.Flags().StringVar(&rateID, "rate", "", "ID of the rate to buy (default: lowest matching rate)")
	cmd.Flags().StringVar(&insurance, "insurance", "", "insured value, e.g. 100.00")
	addRateFilterFlags(cmd, &filter)

	return cmd
}

func newShipmentsLowestRateCommand() *cobra.Command {
	var filter rateFilterFlags

	cmd := &cobra.Command{
		Use:   "lowest-rate SHIPMENT_ID",
		Short: "Show the lowest rate of a shipment",
		Long:  "Select the cheapest rate of a shipment that matches the carrier and service filters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			shipment, err := client.Shipments().Retrieve(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get shipment: %w", err)
			}

			rate, err := shipment.LowestRate(filter.filter())
			if err != nil {
				return fmt.Errorf("failed to select rate: %w", err)
			}

			return outputRate(cmd.OutOrStdout(), &rate)
		},
	}

	addRateFilterFlags(cmd, &filter)

	return cmd
}

func newShipmentsSmartratesCommand() *cobra.Command {
	var (
		deliveryDays int
		accuracy     string
	)

	cmd := &cobra.Command{
		Use:   "smartrates SHIPMENT_ID",
		Short: "Show delivery-time estimates",
		Long:  "List smartrates, or with --delivery-days pick the cheapest one expected to arrive in time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)

			level, err := easypost.ParseSmartrateAccuracy(accuracy)
			if err != nil {
				return err
			}

			if deliveryDays > 0 {
				smartrate, err := client.Shipments().LowestSmartrate(ctx, args[0], deliveryDays, level)
				if err != nil {
					return fmt.Errorf("failed to select smartrate: %w", err)
				}

				return outputSmartrates(cmd.OutOrStdout(), []easypost.Smartrate{*smartrate}, level)
			}

			smartrates, err := client.Shipments().Smartrates(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get smartrates: %w", err)
			}

			return outputSmartrates(cmd.OutOrStdout(), smartrates, level)
		},
	}

	cmd.Flags().IntVar(&deliveryDays, "delivery-days", 0, "maximum days in transit")
	cmd.Flags().StringVar(&accuracy, "accuracy", string(easypost.Percentile90), "estimate percentile, e.g. percentile_90")

	return cmd
}

func newShipmentsLabelCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "label SHIPMENT_ID",
		Short: "Convert a shipment label",
		Long:  "Generate the label of a purchased shipment in another file format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileFormat, err := parseLabelFormat(format, constants.LabelFormatPNG, constants.LabelFormatPDF, constants.LabelFormatZPL, constants.LabelFormatEPL2)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			shipment, err := client.Shipments().GenerateLabel(commandContext(cmd), args[0], &easypost.LabelParams{FileFormat: easypost.Ptr(fileFormat)})
			if err != nil {
				return fmt.Errorf("failed to generate label: %w", err)
			}

			return outputShipment(cmd.OutOrStdout(), shipment)
		},
	}

	cmd.Flags().StringVar(&format, "format", constants.LabelFormatPDF, "label file format (PNG, PDF, ZPL, EPL2)")

	return cmd
}

func newShipmentsRefundCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refund SHIPMENT_ID",
		Short: "Refund a shipment",
		Long:  "Request a refund for the postage of a purchased shipment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			shipment, err := client.Shipments().Refund(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to refund shipment: %w", err)
			}

			return outputShipment(cmd.OutOrStdout(), shipment)
		},
	}
}

func outputShipment(w io.Writer, shipment *easypost.Shipment) error {
	return render(w, shipment, func(w io.Writer) error {
		labelURL := NotAvailable
		if shipment.PostageLabel != nil {
			labelURL = orNA(shipment.PostageLabel.LabelURL)
		}

		selected := NotAvailable
		if shipment.SelectedRate != nil {
			selected = fmt.Sprintf("%s %s %s", shipment.SelectedRate.Carrier, shipment.SelectedRate.Service, shipment.SelectedRate.Rate)
		}

		err := renderProperties(w, [][]string{
			{"ID", shipment.ID},
			{"Reference", orNA(shipment.Reference)},
			{"Status", orNA(shipment.Status)},
			{"Tracking Code", orNA(shipment.TrackingCode)},
			{"Selected Rate", selected},
			{"Label URL", labelURL},
			{"Refund Status", orNA(shipment.RefundStatus)},
			{"Created", formatTime(shipment.CreatedAt)},
		})
		if err != nil || len(shipment.Rates) == 0 {
			return err
		}

		writeLine(w, "\nRates:")

		return renderRates(w, shipment.Rates)
	})
}
