/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package countries

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/acronis/go-countries/log/logtest"
	"github.com/acronis/go-countries/testutil"
)

const (
	usPayload = `{
		"name": "United States of America",
		"capital": "Washington, D.C.",
		"area": 9629091,
		"population": 323947000,
		"flag": "https://restcountries.com/data/usa.svg",
		"currencies": [{"code": "USD", "name": "United States dollar", "symbol": "$"}]
	}`

	ukPayload = `{
		"name": "United Kingdom of Great Britain and Northern Ireland",
		"capital": "London",
		"area": 242900,
		"population": 65110000,
		"flag": "https://restcountries.com/data/gbr.svg",
		"currencies": [{"code": "GBP", "name": "British pound", "symbol": "£"}]
	}`

	// A country payload without the currencies array.
	noCurrenciesPayload = `{"name": "Atlantis", "capital": "Poseidonia"}`

	// A country payload with blank currency fields.
	blankCurrencyPayload = `{"name": "", "currencies": [{"code": "", "name": "", "symbol": ""}]}`
)

type testServer struct {
	*httptest.Server
	RequestsCount atomic.Int32
}

func newTestServer() *testServer {
	ts := &testServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		ts.RequestsCount.Inc()
		rw.Header().Set("Content-Type", "application/json")

		switch {
		case strings.HasPrefix(r.URL.Path, "/alpha/"):
			code := strings.TrimPrefix(r.URL.Path, "/alpha/")
			switch code {
			case "US", "USA":
				_, _ = rw.Write([]byte(usPayload))
			case "NOC":
				_, _ = rw.Write([]byte(noCurrenciesPayload))
			case "BLC":
				_, _ = rw.Write([]byte(blankCurrencyPayload))
			default:
				rw.WriteHeader(http.StatusNotFound)
				_, _ = rw.Write([]byte(`{"status": 404, "message": "Not Found"}`))
			}

		case strings.HasPrefix(r.URL.Path, "/capital/"):
			capital := strings.TrimPrefix(r.URL.Path, "/capital/")
			switch capital {
			case "London":
				_, _ = rw.Write([]byte("[" + ukPayload + "]"))
			case "Nowhere":
				_, _ = rw.Write([]byte("[]"))
			default:
				rw.WriteHeader(http.StatusNotFound)
				_, _ = rw.Write([]byte(`{"status": 404, "message": "Not Found"}`))
			}

		default:
			rw.WriteHeader(http.StatusNotFound)
		}
	}))
	return ts
}

func newTestClient(t *testing.T, serverURL string, cacheCfg CacheConfig) *Client {
	t.Helper()
	cfg := NewDefaultConfig()
	cfg.BaseURL = serverURL
	cfg.Cache = cacheCfg
	client, err := NewWithOpts(cfg, Opts{Logger: logtest.NewRecorder()})
	require.NoError(t, err)
	return client
}

func TestClientLocalCurrencyByCode(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	t.Run("known code", func(t *testing.T) {
		client := newTestClient(t, server.URL, CacheConfig{})
		currency, err := client.LocalCurrencyByCode("US")
		require.NoError(t, err)
		require.Equal(t, LocalCurrency{
			CountryName:    "United States of America",
			CurrencyCode:   "USD",
			CurrencySymbol: "$",
		}, currency)
	})

	t.Run("code is normalized", func(t *testing.T) {
		client := newTestClient(t, server.URL, CacheConfig{})
		currency, err := client.LocalCurrencyByCode("  us ")
		require.NoError(t, err)
		require.Equal(t, "USD", currency.CurrencyCode)
	})

	t.Run("blank code, no requests are made", func(t *testing.T) {
		client := newTestClient(t, server.URL, CacheConfig{})
		server.RequestsCount.Store(0)

		var validationErr *ValidationError
		_, err := client.LocalCurrencyByCode("")
		require.ErrorAs(t, err, &validationErr)
		require.Equal(t, "code", validationErr.Param)

		_, err = client.LocalCurrencyByCodeContext(context.Background(), "   ")
		require.ErrorAs(t, err, &validationErr)

		require.Equal(t, int32(0), server.RequestsCount.Load())
	})

	t.Run("unknown code", func(t *testing.T) {
		client := newTestClient(t, server.URL, CacheConfig{})
		_, err := client.LocalCurrencyByCode("UPSS")
		var remoteErr *RemoteError
		require.ErrorAs(t, err, &remoteErr)
		require.Equal(t, http.StatusNotFound, remoteErr.StatusCode)
		require.Equal(t, "UPSS", remoteErr.Query)
	})

	t.Run("no currency data", func(t *testing.T) {
		client := newTestClient(t, server.URL, CacheConfig{})
		_, err := client.LocalCurrencyByCode("NOC")
		var noDataErr *NoDataError
		require.ErrorAs(t, err, &noDataErr)
		require.Equal(t, "NOC", noDataErr.Query)
	})

	t.Run("blank payload fields are replaced", func(t *testing.T) {
		client := newTestClient(t, server.URL, CacheConfig{})
		currency, err := client.LocalCurrencyByCode("BLC")
		require.NoError(t, err)
		require.Equal(t, LocalCurrency{
			CountryName:    UnknownField,
			CurrencyCode:   UnknownField,
			CurrencySymbol: UnknownField,
		}, currency)
	})
}

func TestClientLocalCurrencyByCodeCaching(t *testing.T) {
	t.Run("repeated lookups hit the cache", func(t *testing.T) {
		server := newTestServer()
		defer server.Close()
		client := newTestClient(t, server.URL, CacheConfig{Enabled: true, MaxEntries: 10})

		for i := 0; i < 3; i++ {
			currency, err := client.LocalCurrencyByCode("US")
			require.NoError(t, err)
			require.Equal(t, "USD", currency.CurrencyCode)
		}
		require.Equal(t, int32(1), server.RequestsCount.Load())
	})

	t.Run("differently written codes share one entry", func(t *testing.T) {
		server := newTestServer()
		defer server.Close()
		client := newTestClient(t, server.URL, CacheConfig{Enabled: true, MaxEntries: 10})

		for _, code := range []string{"US", "us", " Us "} {
			_, err := client.LocalCurrencyByCode(code)
			require.NoError(t, err)
		}
		require.Equal(t, int32(1), server.RequestsCount.Load())
	})

	t.Run("disabled cache always goes upstream", func(t *testing.T) {
		server := newTestServer()
		defer server.Close()
		client := newTestClient(t, server.URL, CacheConfig{})

		for i := 0; i < 2; i++ {
			_, err := client.LocalCurrencyByCode("US")
			require.NoError(t, err)
		}
		require.Equal(t, int32(2), server.RequestsCount.Load())
	})

	t.Run("lookup errors are not cached", func(t *testing.T) {
		server := newTestServer()
		defer server.Close()
		client := newTestClient(t, server.URL, CacheConfig{Enabled: true, MaxEntries: 10})

		for i := 0; i < 2; i++ {
			_, err := client.LocalCurrencyByCode("UPSS")
			var remoteErr *RemoteError
			require.ErrorAs(t, err, &remoteErr)
		}
		require.Equal(t, int32(2), server.RequestsCount.Load())
	})

	t.Run("expired entry is fetched again", func(t *testing.T) {
		server := newTestServer()
		defer server.Close()
		client := newTestClient(t, server.URL,
			CacheConfig{Enabled: true, MaxEntries: 10, DefaultTTL: time.Millisecond * 50})

		_, err := client.LocalCurrencyByCode("US")
		require.NoError(t, err)
		time.Sleep(time.Millisecond * 100)
		_, err = client.LocalCurrencyByCode("US")
		require.NoError(t, err)
		require.Equal(t, int32(2), server.RequestsCount.Load())
	})

	t.Run("purge drops all entries", func(t *testing.T) {
		server := newTestServer()
		defer server.Close()
		client := newTestClient(t, server.URL, CacheConfig{Enabled: true, MaxEntries: 10})

		_, err := client.LocalCurrencyByCode("US")
		require.NoError(t, err)
		client.PurgeCache()
		_, err = client.LocalCurrencyByCode("US")
		require.NoError(t, err)
		require.Equal(t, int32(2), server.RequestsCount.Load())
	})
}

func TestClientLocalCurrencyByCodeCancellation(t *testing.T) {
	requestStarted := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		close(requestStarted)
		<-r.Context().Done()
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, CacheConfig{Enabled: true, MaxEntries: 10})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-requestStarted
		cancel()
	}()

	_, err := client.LocalCurrencyByCodeContext(ctx, "US")
	require.Error(t, err)
	testutil.RequireErrorIsAny(t, err, []error{context.Canceled})

	var remoteErr *RemoteError
	require.False(t, errors.As(err, &remoteErr))
}

func TestClientLocalCurrencyByCodeTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, CacheConfig{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*50)
	defer cancel()

	_, err := client.LocalCurrencyByCodeContext(ctx, "US")
	require.Error(t, err)
	testutil.RequireErrorIsAny(t, err, []error{context.DeadlineExceeded})
}

func TestClientCountryByCapital(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	t.Run("known capital", func(t *testing.T) {
		client := newTestClient(t, server.URL, CacheConfig{})
		country, err := client.CountryByCapital("London")
		require.NoError(t, err)
		require.Equal(t, Country{
			Name:        "United Kingdom of Great Britain and Northern Ireland",
			CapitalName: "London",
			Area:        242900,
			Population:  65110000,
			FlagURL:     "https://restcountries.com/data/gbr.svg",
		}, country)
	})

	t.Run("blank capital, no requests are made", func(t *testing.T) {
		client := newTestClient(t, server.URL, CacheConfig{})
		server.RequestsCount.Store(0)

		var validationErr *ValidationError
		_, err := client.CountryByCapital(" ")
		require.ErrorAs(t, err, &validationErr)
		require.Equal(t, "capital", validationErr.Param)
		require.Equal(t, int32(0), server.RequestsCount.Load())
	})

	t.Run("unknown capital", func(t *testing.T) {
		client := newTestClient(t, server.URL, CacheConfig{})
		_, err := client.CountryByCapital("Gotham")
		var remoteErr *RemoteError
		require.ErrorAs(t, err, &remoteErr)
		require.Equal(t, http.StatusNotFound, remoteErr.StatusCode)
		require.Equal(t, "Gotham", remoteErr.Query)
	})

	t.Run("empty result list", func(t *testing.T) {
		client := newTestClient(t, server.URL, CacheConfig{})
		_, err := client.CountryByCapital("Nowhere")
		var remoteErr *RemoteError
		require.ErrorAs(t, err, &remoteErr)
		require.Equal(t, http.StatusOK, remoteErr.StatusCode)
	})
}

func TestClientCountryByCode(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	t.Run("known code", func(t *testing.T) {
		client := newTestClient(t, server.URL, CacheConfig{})
		country, err := client.CountryByCode("usa")
		require.NoError(t, err)
		require.Equal(t, "United States of America", country.Name)
		require.Equal(t, "Washington, D.C.", country.CapitalName)
	})

	t.Run("blank code", func(t *testing.T) {
		client := newTestClient(t, server.URL, CacheConfig{})
		var validationErr *ValidationError
		_, err := client.CountryByCode("\t")
		require.ErrorAs(t, err, &validationErr)
	})
}

func TestClientMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		_, _ = rw.Write([]byte(`{"name": `))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, CacheConfig{})
	_, err := client.LocalCurrencyByCode("US")
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	require.Contains(t, remoteErr.Message, "unmarshaling response")
}

func TestClientResponseBodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		_, _ = rw.Write([]byte(`{"name": "` + strings.Repeat("A", 1024) + `"}`))
	}))
	defer server.Close()

	cfg := NewDefaultConfig()
	cfg.BaseURL = server.URL
	cfg.Cache = CacheConfig{}
	cfg.MaxResponseBodySize = 128
	client, err := NewWithOpts(cfg, Opts{})
	require.NoError(t, err)

	_, err = client.LocalCurrencyByCode("US")
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	require.Contains(t, remoteErr.Message, "exceeds")
}
