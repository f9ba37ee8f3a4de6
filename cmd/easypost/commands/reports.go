package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// NewReportsCommand creates the reports command group
func NewReportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reports",
		Aliases: []string{"report"},
		Short:   "Manage reports",
		Long:    "Request and download shipment, tracker, payment log and other reports",
	}

	cmd.AddCommand(newReportsCreateCommand())
	cmd.AddCommand(newReportsGetCommand())
	cmd.AddCommand(newReportsListCommand())

	return cmd
}

func newReportsCreateCommand() *cobra.Command {
	var (
		startDate, endDate string
		includeChildren    bool
		sendEmail          bool
		columns            []string
		wait               bool
	)

	cmd := &cobra.Command{
		Use:   "create TYPE",
		Short: "Request a report",
		Long:  "Request a report of TYPE (e.g. shipment, tracker, payment_log) for a date range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			params := &easypost.ReportCreateParams{
				StartDate: easypost.Ptr(startDate),
				EndDate:   easypost.Ptr(endDate),
				Columns:   columns,
			}

			if cmd.Flags().Changed("include-children") {
				params.IncludeChildren = easypost.Ptr(includeChildren)
			}

			if cmd.Flags().Changed("send-email") {
				params.SendEmail = easypost.Ptr(sendEmail)
			}

			report, err := client.Reports().Create(commandContext(cmd), args[0], params)
			if err != nil {
				return fmt.Errorf("failed to create report: %w", err)
			}

			if wait {
				report, err = client.Reports().WaitUntilAvailable(commandContext(cmd), report.ID)
				if err != nil {
					return fmt.Errorf("failed waiting for report: %w", err)
				}
			}

			return outputReport(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&startDate, "start-date", "", "first day of the report (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "last day of the report (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&includeChildren, "include-children", false, "include child user data")
	cmd.Flags().BoolVar(&sendEmail, "send-email", false, "email the report when ready")
	cmd.Flags().BoolVar(&wait, "wait", false, "wait until the report is available")
	cmd.Flags().StringSliceVar(&columns, "column", nil, "restrict the report to these columns")
	_ = cmd.MarkFlagRequired("start-date")
	_ = cmd.MarkFlagRequired("end-date")

	return cmd
}

func newReportsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get REPORT_ID",
		Short: "Get report details",
		Long:  "Display a report's status and download URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			report, err := client.Reports().Retrieve(commandContext(cmd), args[0])
			if err != nil {
				return fmt.Errorf("failed to get report: %w", err)
			}

			return outputReport(cmd.OutOrStdout(), report)
		},
	}
}

func newReportsListCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list TYPE",
		Short: "List reports",
		Long:  "List reports of TYPE, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			reportType := args[0]
			fetch := func(ctx context.Context, params *easypost.ListParams) (*easypost.Collection[easypost.Report], error) {
				return client.Reports().All(ctx, reportType, params)
			}

			reports, hasMore, err := fetchList(commandContext(cmd), fetch, &flags)
			if err != nil {
				return fmt.Errorf("failed to list reports: %w", err)
			}

			return render(cmd.OutOrStdout(), reports, func(w io.Writer) error {
				if len(reports) == 0 {
					writeLine(w, "No reports found")

					return nil
				}

				rows := make([][]string, 0, len(reports))
				for _, report := range reports {
					rows = append(rows, []string{report.ID, orNA(report.Status), orNA(report.StartDate), orNA(report.EndDate), orNA(report.URL)})
				}

				err := renderTable(w, []string{"ID", "Status", "Start", "End", "URL"}, rows)
				if err == nil && hasMore {
					writeLine(w, "More results available, use --before-id %s", reports[len(reports)-1].ID)
				}

				return err
			})
		},
	}

	addListFlags(cmd, &flags)

	return cmd
}

func outputReport(w io.Writer, report *easypost.Report) error {
	return render(w, report, func(w io.Writer) error {
		return renderProperties(w, [][]string{
			{"ID", report.ID},
			{"Status", orNA(report.Status)},
			{"Start Date", orNA(report.StartDate)},
			{"End Date", orNA(report.EndDate)},
			{"URL", orNA(report.URL)},
			{"URL Expires", formatTime(report.URLExpiresAt)},
			{"Created", formatTime(report.CreatedAt)},
		})
	})
}
