package aggregate

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"coinprices/internal/provider"
	"coinprices/internal/symbol"
)

// ErrJoin means the concurrent wait itself broke down, as opposed to a single
// symbol failing to fetch.
var ErrJoin = errors.New("aggregate: join failed")

// Collect fetches every symbol concurrently and waits for all of them to
// settle. Failed fetches are logged and dropped; an all-failure run returns an
// empty slice and a nil error. The only error Collect returns wraps ErrJoin.
//
// The order of the returned quotes is unspecified; use Sort for display.
func Collect(ctx context.Context, f provider.Fetcher, symbols []symbol.Symbol, log *zap.Logger) ([]provider.Quote, error) {
	if log == nil {
		log = zap.NewNop()
	}

	// each goroutine owns exactly one slot
	outcomes := make([]provider.Outcome, len(symbols))

	var g errgroup.Group
	for i, s := range symbols {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: fetch %s panicked: %v", ErrJoin, s.Code(), r)
				}
			}()
			outcomes[i] = f.Fetch(ctx, s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	quotes := make([]provider.Quote, 0, len(outcomes))
	for _, o := range outcomes {
		if !o.OK() {
			log.Warn("error fetching coin",
				zap.String("symbol", o.Requested.Code()),
				zap.String("reason", o.Reason),
			)
			continue
		}
		quotes = append(quotes, o.Quote)
	}
	log.Debug("collected quotes",
		zap.Int("requested", len(symbols)),
		zap.Int("succeeded", len(quotes)),
	)
	return quotes, nil
}

// Sort orders quotes by their symbol's position in the registry.
func Sort(quotes []provider.Quote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].Symbol.Index() < quotes[j].Symbol.Index()
	})
}
