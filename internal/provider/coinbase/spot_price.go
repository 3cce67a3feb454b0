package coinbase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"coinprices/internal/pricefmt"
	"coinprices/internal/provider"
	"coinprices/internal/symbol"
)

var (
	ErrShapeMismatch    = errors.New("response shape mismatch")
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("authentication required")
	ErrUnexpectedStatus = errors.New("unexpected response")
)

// Spot is the raw spot price for one base currency.
type Spot struct {
	Base   string
	Amount string
}

// {"data": {"base": "BTC", "currency": "USD", "amount": "64123.45"}}
type payload struct {
	Data *struct {
		Base   *string `json:"base"`
		Amount *string `json:"amount"`
	} `json:"data"`
}

// URL is the request URL for code.
func (c *Client) URL(code string) string {
	return strings.ReplaceAll(c.endpoint, "{}", code)
}

// SpotPrice retrieves the spot price for a base code such as "BTC".
func (c *Client) SpotPrice(ctx context.Context, code string) (Spot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(code), http.NoBody)
	if err != nil {
		return Spot{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return Spot{}, fmt.Errorf("performing request: %w", err)
	}
	defer func() {
		// drain so the shared transport can reuse the connection
		_, _ = io.Copy(io.Discard, res.Body)
		_ = res.Body.Close()
	}()

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusNotFound:
		return Spot{}, ErrNotFound

	case http.StatusUnauthorized:
		return Spot{}, ErrUnauthorized

	default:
		return Spot{}, fmt.Errorf("%w: status %d", ErrUnexpectedStatus, res.StatusCode)
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return Spot{}, fmt.Errorf("reading body: %w", err)
	}
	// Unmarshal rejects trailing data after the envelope; a streaming Decoder would not.
	var body payload
	if err := json.Unmarshal(raw, &body); err != nil {
		return Spot{}, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}
	if body.Data == nil || body.Data.Base == nil || body.Data.Amount == nil {
		return Spot{}, ErrShapeMismatch
	}
	return Spot{Base: *body.Data.Base, Amount: *body.Data.Amount}, nil
}

// Fetch implements provider.Fetcher. Every error becomes a Failure whose
// reason is the short description of what went wrong.
func (c *Client) Fetch(ctx context.Context, s symbol.Symbol) provider.Outcome {
	spot, err := c.SpotPrice(ctx, s.Code())
	if err != nil {
		return provider.Failure(s, reason(err))
	}

	price, ok := pricefmt.Parse(spot.Amount)
	if !ok {
		c.log.Debug("amount has no decimal point; rendering degraded price",
			zap.String("symbol", s.Code()),
			zap.String("amount", spot.Amount),
		)
	}
	return provider.Success(s, provider.Quote{
		Symbol: symbol.New(spot.Base),
		Price:  price.String(),
	})
}

func reason(err error) string {
	for _, sentinel := range []error{ErrShapeMismatch, ErrNotFound, ErrUnauthorized, ErrUnexpectedStatus} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
