// Package fxrates pulls the central bank's published daily exchange
// rates and folds them into a tariff set, so the conversion primitive
// works from fresh numbers while the engine itself stays free of I/O.
package fxrates

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/complykit/compliance-service/internal/config"
	"github.com/complykit/compliance-service/internal/tariff"
)

// Client handles integration with the central bank rates feed
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new rates client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.RatesURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// fetch retrieves the raw daily rates document
func (c *Client) fetch() ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("rates XML response: %s", string(body))
	return body, nil
}

// parse extracts currency codes and their base-currency values from the
// daily rates XML
func (c *Client) parse(rawBody []byte) (map[string]float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %v", err)
	}

	rateElements := doc.FindElements("//ExchangeRates/Rate")
	if len(rateElements) == 0 {
		return nil, fmt.Errorf("no exchange rate data found in XML")
	}

	rates := make(map[string]float64, len(rateElements))
	for _, el := range rateElements {
		code := el.SelectAttrValue("code", "")
		if code == "" {
			continue
		}
		rate, err := strconv.ParseFloat(el.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rate for %s: %v", code, err)
		}
		rates[code] = rate
	}
	return rates, nil
}

// FetchRates retrieves the current exchange rates from the central bank
func (c *Client) FetchRates() (map[string]float64, error) {
	body, err := c.fetch()
	if err != nil {
		return nil, err
	}

	rates, err := c.parse(body)
	if err != nil {
		return nil, err
	}

	c.log.Infof("Retrieved %d exchange rates", len(rates))
	return rates, nil
}

// Refresh merges the fetched rates into the tariff set currently in
// effect. Codes absent from the feed keep their compiled-in values.
func (c *Client) Refresh(set *tariff.Set) error {
	rates, err := c.FetchRates()
	if err != nil {
		return err
	}
	for code, rate := range rates {
		set.ExchangeRates[code] = rate
	}
	return nil
}
