/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package countries

import (
	"context"
	"net/url"
	"strings"
)

// UnknownField is used for LocalCurrency fields that are absent in the upstream payload.
const UnknownField = "Unknown"

// LocalCurrency represents the local currency of a country.
type LocalCurrency struct {
	CountryName    string
	CurrencyCode   string
	CurrencySymbol string
}

// LocalCurrencyByCode returns the local currency of a country by its ISO 3166-1 alpha-2/alpha-3 code.
// It blocks for the duration of the network round trip on a cache miss.
func (c *Client) LocalCurrencyByCode(code string) (LocalCurrency, error) {
	return c.LocalCurrencyByCodeContext(context.Background(), code)
}

// LocalCurrencyByCodeContext returns the local currency of a country by its ISO 3166-1 alpha-2/alpha-3 code.
//
// The result is cached by the normalized (trimmed, upper-cased) code.
// Concurrent misses for the same code are collapsed into a single upstream request.
// Cancellation of the passed context aborts the in-flight request,
// surfaces as context.Canceled/context.DeadlineExceeded and doesn't touch the cache.
func (c *Client) LocalCurrencyByCodeContext(ctx context.Context, code string) (LocalCurrency, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return LocalCurrency{}, &ValidationError{Param: "code"}
	}
	key := strings.ToUpper(code)

	if c.currencyCache == nil {
		return c.fetchLocalCurrency(ctx, key)
	}
	return c.currencyCache.GetOrLoad(ctx, key, func(ctx context.Context) (LocalCurrency, error) {
		return c.fetchLocalCurrency(ctx, key)
	})
}

func (c *Client) fetchLocalCurrency(ctx context.Context, code string) (LocalCurrency, error) {
	var payload countryPayload
	if err := c.doGetJSON(ctx, c.baseURL+"/alpha/"+url.PathEscape(code), code, &payload); err != nil {
		return LocalCurrency{}, err
	}

	if len(payload.Currencies) == 0 {
		return LocalCurrency{}, &NoDataError{Query: code, Missing: "currency"}
	}

	currency := payload.Currencies[0]
	return LocalCurrency{
		CountryName:    orUnknown(payload.Name),
		CurrencyCode:   orUnknown(currency.Code),
		CurrencySymbol: orUnknown(currency.Symbol),
	}, nil
}

func orUnknown(s string) string {
	if s == "" {
		return UnknownField
	}
	return s
}
