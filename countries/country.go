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

// Country represents country info as reported by the upstream API.
type Country struct {
	Name        string
	CapitalName string
	Area        float64
	Population  int64
	FlagURL     string
}

// currencyPayload is an element of the currencies array of the upstream country object.
type currencyPayload struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// countryPayload is the upstream country object.
type countryPayload struct {
	Name       string            `json:"name"`
	Capital    string            `json:"capital"`
	Area       float64           `json:"area"`
	Population int64             `json:"population"`
	Flag       string            `json:"flag"`
	Currencies []currencyPayload `json:"currencies"`
}

func (p *countryPayload) toCountry() Country {
	return Country{
		Name:        p.Name,
		CapitalName: p.Capital,
		Area:        p.Area,
		Population:  p.Population,
		FlagURL:     p.Flag,
	}
}

// CountryByCapital returns info about the country whose capital city matches the passed name.
// It blocks for the duration of the network round trip.
func (c *Client) CountryByCapital(capital string) (Country, error) {
	return c.CountryByCapitalContext(context.Background(), capital)
}

// CountryByCapitalContext returns info about the country whose capital city matches the passed name.
// The upstream API responds with a list of matches; the first one is returned.
// Results are not cached.
func (c *Client) CountryByCapitalContext(ctx context.Context, capital string) (Country, error) {
	capital = strings.TrimSpace(capital)
	if capital == "" {
		return Country{}, &ValidationError{Param: "capital"}
	}

	reqURL := c.baseURL + "/capital/" + url.PathEscape(capital)
	var payload []countryPayload
	if err := c.doGetJSON(ctx, reqURL, capital, &payload); err != nil {
		return Country{}, err
	}

	if len(payload) == 0 {
		return Country{}, &RemoteError{
			Method: "GET", URL: reqURL, StatusCode: 200, Query: capital, Message: "empty result list",
		}
	}
	return payload[0].toCountry(), nil
}

// CountryByCode returns info about a country by its ISO 3166-1 alpha-2/alpha-3 code.
// It blocks for the duration of the network round trip.
func (c *Client) CountryByCode(code string) (Country, error) {
	return c.CountryByCodeContext(context.Background(), code)
}

// CountryByCodeContext returns info about a country by its ISO 3166-1 alpha-2/alpha-3 code.
// Results are not cached (only currency lookups are).
func (c *Client) CountryByCodeContext(ctx context.Context, code string) (Country, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Country{}, &ValidationError{Param: "code"}
	}
	code = strings.ToUpper(code)

	var payload countryPayload
	if err := c.doGetJSON(ctx, c.baseURL+"/alpha/"+url.PathEscape(code), code, &payload); err != nil {
		return Country{}, err
	}
	return payload.toCountry(), nil
}
