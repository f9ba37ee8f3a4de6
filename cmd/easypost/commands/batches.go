package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/easypost-go/internal/constants"
	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// NewBatchesCommand creates the batches command group
func NewBatchesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "batches",
		Aliases: []string{"batch"},
		Short:   "Manage batches",
		Long:    "Group shipments into batches to buy, label and manifest them together",
	}

	cmd.AddCommand(newBatchesCreateCommand())
	cmd.AddCommand(newBatchesGetCommand())
	cmd.AddCommand(newBatchesListCommand())
	cmd.AddCommand(newBatchesAddCommand())
	cmd.AddCommand(newBatchesRemoveCommand())
	cmd.AddCommand(newBatchesBuyCommand())
	cmd.AddCommand(newBatchesLabelCommand())
	cmd.AddCommand(newBatchesScanFormCommand())

	return cmd
}

func newBatchesCreateCommand() *cobra.Command {
	var (
		reference   string
		shipmentIDs []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a batch",
		Long:  "Create a batch, optionally seeded with existing shipments",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := &easypost.BatchCreateParams{Reference: optionalString(cmd, "reference", reference)}
			if len(shipmentIDs) > 0 {
				params.Set("batch.shipments", shipmentRefs(shipmentIDs))
			}

			batch, err := client.Batches().Create(commandContext(cmd), params)
			if err != nil {
				return fmt.Errorf("failed to create batch: %w", err)
			}

			return outputBatch(cmd.OutOrStdout(), batch)
		},
	}

	cmd.Flags().StringVar(&reference, "reference", "", "batch reference")
	cmd.Flags().StringSliceVar(&shipmentIDs, "shipment", nil, "IDs of existing shipments to include")

	return cmd
}

func newBatchesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get BATCH_ID",
		Short: "Get batch details",
		Long:  "Display a batch and the state of its shipments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			batch, err := client.Batches().Retrieve(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get batch: %w", err)
			}

			return outputBatch(cmd.OutOrStdout(), batch)
		},
	}
}

func newBatchesListCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List batches",
		Long:  "List batches, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			batches, hasMore, err := fetchList(commandContext(cmd), client.Batches().All, &flags)
			if err != nil {
				return fmt.Errorf("failed to list batches: %w", err)
			}

			return render(cmd.OutOrStdout(), batches, func(w io.Writer) error {
				if len(batches) == 0 {
					writeLine(w, "No batches found")

					return nil
				}

				rows := make([][]string, 0, len(batches))
				for _, batch := range batches {
					rows = append(rows, []string{batch.ID, orNA(batch.Reference), orNA(batch.State), strconv.Itoa(batch.NumShipments), formatTime(batch.CreatedAt)})
				}

				err := renderTable(w, []string{"ID", "Reference", "State", "Shipments", "Created"}, rows)
				if err == nil && hasMore {
					writeLine(w, "More results available, use --before-id %s", batches[len(batches)-1].ID)
				}

				return err
			})
		},
	}

	addListFlags(cmd, &flags)

	return cmd
}

func newBatchesAddCommand() *cobra.Command {
	return newBatchShipmentsCommand("add", "Add shipments to a batch", func(client easypost.Client) batchShipmentsFunc {
		return client.Batches().AddShipments
	})
}

func newBatchesRemoveCommand() *cobra.Command {
	return newBatchShipmentsCommand("remove", "Remove shipments from a batch", func(client easypost.Client) batchShipmentsFunc {
		return client.Batches().RemoveShipments
	})
}

type batchShipmentsFunc = func(ctx context.Context, id string, params *easypost.BatchShipmentsParams) (*easypost.Batch, error)

func newBatchShipmentsCommand(use, short string, operation func(easypost.Client) batchShipmentsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " BATCH_ID SHIPMENT_ID...",
		Short: short,
		Long:  short + "; blank IDs are ignored",
		Args:  cobra.MinimumNArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := &easypost.BatchShipmentsParams{ShipmentIDs: args[1:]}

			batch, err := operation(client)(commandContext(cmd), args[0], params)
			if err != nil {
				return fmt.Errorf("failed to %s shipments: %w", use, err)
			}

			return outputBatch(cmd.OutOrStdout(), batch)
		},
	}
}

func newBatchesBuyCommand() *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "buy BATCH_ID",
		Short: "Buy a batch",
		Long:  "Buy postage for every shipment in a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			batch, err := client.Batches().Buy(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to buy batch: %w", err)
			}

			if wait {
				batch, err = client.Batches().WaitForState(commandContext(cmd), batch.ID, constants.BatchStatePurchased)
				if err != nil {
					return fmt.Errorf("failed waiting for batch purchase: %w", err)
				}
			}

			return outputBatch(cmd.OutOrStdout(), batch)
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "wait until every shipment is purchased")

	return cmd
}

func newBatchesLabelCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "label BATCH_ID",
		Short: "Generate a batch label",
		Long:  "Generate one label file covering every shipment in a purchased batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileFormat, err := parseLabelFormat(format, constants.LabelFormatPDF, constants.LabelFormatZPL, constants.LabelFormatEPL2)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			batch, err := client.Batches().GenerateLabel(commandContext(cmd), args[0], &easypost.LabelParams{FileFormat: easypost.Ptr(fileFormat)})
			if err != nil {
				return fmt.Errorf("failed to generate batch label: %w", err)
			}

			return outputBatch(cmd.OutOrStdout(), batch)
		},
	}

	cmd.Flags().StringVar(&format, "format", constants.LabelFormatPDF, "label file format (PDF, ZPL, EPL2)")

	return cmd
}

func newBatchesScanFormCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scan-form BATCH_ID",
		Short: "Generate a scan form",
		Long:  "Generate a scan form (manifest) for a purchased batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			batch, err := client.Batches().GenerateScanForm(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to generate scan form: %w", err)
			}

			return outputBatch(cmd.OutOrStdout(), batch)
		},
	}
}

func shipmentRefs(ids []string) []map[string]any {
	refs := make([]map[string]any, 0, len(ids))

	for _, id := range ids {
		if id != "" {
			refs = append(refs, map[string]any{"id": id})
		}
	}

	return refs
}

func outputBatch(w io.Writer, batch *easypost.Batch) error {
	return render(w, batch, func(w io.Writer) error {
		scanForm := NotAvailable
		if batch.ScanForm != nil {
			scanForm = orNA(batch.ScanForm.FormURL)
		}

		err := renderProperties(w, [][]string{
			{"ID", batch.ID},
			{"Reference", orNA(batch.Reference)},
			{"State", orNA(batch.State)},
			{"Shipments", strconv.Itoa(batch.NumShipments)},
			{"Label URL", orNA(batch.LabelURL)},
			{"Scan Form", scanForm},
			{"Created", formatTime(batch.CreatedAt)},
		})
		if err != nil || len(batch.Shipments) == 0 {
			return err
		}

		rows := make([][]string, 0, len(batch.Shipments))
		for _, shipment := range batch.Shipments {
			rows = append(rows, []string{shipment.ID, orNA(shipment.BatchStatus), orNA(shipment.TrackingCode), orNA(shipment.BatchMessage)})
		}

		writeLine(w, "\nShipments:")

		return renderTable(w, []string{"ID", "Status", "Tracking Code", "Message"}, rows)
	})
}
