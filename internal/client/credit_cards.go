package client

import (
	"context"
	"net/http"

	"github.com/fivetwenty-io/easypost-go/pkg/easypost"
)

// CreditCardsClient implements easypost.CreditCardsClient.
type CreditCardsClient struct {
	requester *requester
}

func newCreditCardsClient(r *requester) *CreditCardsClient {
	return &CreditCardsClient{requester: r}
}

// Fund implements easypost.CreditCardsClient.Fund.
func (c *CreditCardsClient) Fund(ctx context.Context, id string, params *easypost.CreditCardFundParams) error {
	err := c.requester.require("credit_cards.fund", easypost.V2)
	if err != nil {
		return err
	}

	err = requireID(id)
	if err != nil {
		return err
	}

	return executeNoContent(ctx, c.requester, http.MethodPost, resourcePath("credit_cards", id, "charge"), paramsOf(params))
}

// Delete implements easypost.CreditCardsClient.Delete.
func (c *CreditCardsClient) Delete(ctx context.Context, id string) error {
	err := c.requester.require("credit_cards.delete", easypost.V2)
	if err != nil {
		return err
	}

	err = requireID(id)
	if err != nil {
		return err
	}

	return executeNoContent(ctx, c.requester, http.MethodDelete, resourcePath("credit_cards", id), nil)
}
