package coinbase_test

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"coinprices/internal/provider/coinbase"
)

func okResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	client := coinbase.NewClient()
	require.NotNil(t, client)
	require.Equal(t, "https://api.coinbase.com/v2/prices/ETH-USD/spot", client.URL("ETH"))
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: the custom client receives exactly one call
	httpClient.EXPECT().
		Do(gomock.Any()).
		Return(okResponse(`{"data":{"base":"BTC","amount":"1.00"}}`), nil).
		Times(1)

	client := coinbase.NewClient(coinbase.WithHTTPClient(httpClient))

	// Act: call SpotPrice with the custom HTTP client.
	_, err := client.SpotPrice(t.Context(), "BTC")
	require.NoError(t, err)
}

func TestWithEndpoint(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	endpoint := "http://localhost:8080/prices/{}/spot"

	// Assert: the code is substituted into the overridden template
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "http://localhost:8080/prices/SOL/spot", req.URL.String())
			return okResponse(`{"data":{"base":"SOL","amount":"150.00"}}`), nil
		}).
		Times(1)

	client := coinbase.NewClient(coinbase.WithHTTPClient(httpClient), coinbase.WithEndpoint(endpoint))

	_, err := client.SpotPrice(t.Context(), "SOL")
	require.NoError(t, err)
}

func TestWithHeader(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: custom headers are added next to the JSON defaults
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "bar", req.Header.Get("foo"))
			require.Equal(t, "application/json", req.Header.Get("Content-Type"))
			require.Equal(t, "application/json", req.Header.Get("Accept"))
			require.True(t, strings.HasSuffix(req.URL.Path, "/BTC-USD/spot"))
			return okResponse(`{"data":{"base":"BTC","amount":"1.00"}}`), nil
		}).
		Times(2)

	client := coinbase.NewClient(coinbase.WithHTTPClient(httpClient), coinbase.WithHeader(http.Header{
		"foo": []string{"bar"},
	}))

	// Two calls must not accumulate headers on the shared template.
	for range 2 {
		_, err := client.SpotPrice(t.Context(), "BTC")
		require.NoError(t, err)
	}
}
