package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fivetwenty-io/easypost-go/internal/constants"
	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// ReportsClient implements easypost.ReportsClient.
type ReportsClient struct {
	requester *requester
}

func newReportsClient(r *requester) *ReportsClient {
	return &ReportsClient{requester: r}
}

// Create implements easypost.ReportsClient.Create.
func (c *ReportsClient) Create(ctx context.Context, reportType string, params *easypost.ReportCreateParams) (*easypost.Report, error) {
	path, err := reportsPath(reportType)
	if err != nil {
		return nil, err
	}

	return execute[easypost.Report](ctx, c.requester, http.MethodPost, path, paramsOf(params), "")
}

// Retrieve implements easypost.ReportsClient.Retrieve.
func (c *ReportsClient) Retrieve(ctx context.Context, id string) (*easypost.Report, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return execute[easypost.Report](ctx, c.requester, http.MethodGet, resourcePath("reports", id), nil, "")
}

// All implements easypost.ReportsClient.All.
func (c *ReportsClient) All(ctx context.Context, reportType string, params *easypost.ListParams) (*easypost.Collection[easypost.Report], error) {
	path, err := reportsPath(reportType)
	if err != nil {
		return nil, err
	}

	return list[easypost.Report](ctx, c.requester, path, "reports", params)
}

// NextPage implements easypost.ReportsClient.NextPage.
func (c *ReportsClient) NextPage(ctx context.Context, reportType string, page *easypost.Collection[easypost.Report]) (*easypost.Collection[easypost.Report], error) {
	path, err := reportsPath(reportType)
	if err != nil {
		return nil, err
	}

	return nextPage(ctx, c.requester, path, "reports", page)
}

// WaitUntilAvailable implements easypost.ReportsClient.WaitUntilAvailable.
func (c *ReportsClient) WaitUntilAvailable(ctx context.Context, id string) (*easypost.Report, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return pollUntil(ctx, c.requester,
		func(ctx context.Context) (*easypost.Report, error) {
			return c.Retrieve(ctx, id)
		},
		func(report *easypost.Report) (bool, error) {
			switch report.Status {
			case constants.ReportStatusAvailable:
				return true, nil
			case constants.ReportStatusFailed:
				return true, fmt.Errorf("%w: %s", easypost.ErrReportFailed, report.ID)
			default:
				return false, nil
			}
		})
}

func reportsPath(reportType string) (string, error) {
	reportType = strings.TrimSpace(reportType)
	if reportType == "" {
		return "", &easypost.MissingParameterError{Name: "type"}
	}

	return resourcePath("reports", reportType), nil
}
