package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jjenkins/vinlookup/internal/model"
)

const (
	// DefaultURLTemplate is the NHTSA vPIC flat-format decode endpoint
	DefaultURLTemplate = "https://vpic.nhtsa.dot.gov/api/vehicles/decodevinvalues/{vin}?format=json"
	defaultTimeout     = 100 * time.Second
	vinPlaceholder     = "{vin}"
)

// VPICClient handles communication with the vPIC decode API
type VPICClient struct {
	client      *http.Client
	urlTemplate string
}

// NewVPICClient creates a new vPIC API client for the given URL template.
// A non-positive timeout falls back to the default.
func NewVPICClient(urlTemplate string, timeout time.Duration) *VPICClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &VPICClient{
		client: &http.Client{
			Timeout: timeout,
		},
		urlTemplate: urlTemplate,
	}
}

// decodeResponse represents the API response envelope
type decodeResponse struct {
	Count          int            `json:"Count"`
	Message        string         `json:"Message"`
	SearchCriteria string         `json:"SearchCriteria"`
	Results        []decodeResult `json:"Results"`
}

// decodeResult represents one element of Results; null values decode as ""
type decodeResult struct {
	VIN               string `json:"VIN"`
	Make              string `json:"Make"`
	Model             string `json:"Model"`
	ModelYear         string `json:"ModelYear"`
	BodyClass         string `json:"BodyClass"`
	FuelTypePrimary   string `json:"FuelTypePrimary"`
	DriveType         string `json:"DriveType"`
	EngineModel       string `json:"EngineModel"`
	EngineCylinders   string `json:"EngineCylinders"`
	EngineHP          string `json:"EngineHP"`
	DisplacementCC    string `json:"DisplacementCC"`
	SuggestedVIN      string `json:"SuggestedVIN"`
	TransmissionStyle string `json:"TransmissionStyle"`
}

// URL returns the request URL for vin
func (c *VPICClient) URL(vin string) string {
	return strings.ReplaceAll(c.urlTemplate, vinPlaceholder, vin)
}

// Decode retrieves the decoded attributes for an already validated VIN.
// Only the first element of Results is consulted.
func (c *VPICClient) Decode(ctx context.Context, vin string) (*model.Vehicle, error) {
	body, err := c.fetch(ctx, c.URL(vin))
	if err != nil {
		return nil, err
	}

	var resp decodeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &RequestError{
			Detail: fmt.Sprintf("failed to parse decode response: %v", err),
			Err:    err,
		}
	}

	if len(resp.Results) == 0 || resp.Results[0].Make == "" {
		return nil, ErrNoResults
	}

	r := resp.Results[0]
	return &model.Vehicle{
		VIN:               r.VIN,
		Make:              r.Make,
		Model:             r.Model,
		ModelYear:         r.ModelYear,
		BodyClass:         r.BodyClass,
		FuelTypePrimary:   r.FuelTypePrimary,
		DriveType:         r.DriveType,
		EngineModel:       r.EngineModel,
		EngineCylinders:   r.EngineCylinders,
		EngineHP:          r.EngineHP,
		DisplacementCC:    r.DisplacementCC,
		SuggestedVIN:      r.SuggestedVIN,
		TransmissionStyle: r.TransmissionStyle,
	}, nil
}

// fetch performs a single HTTP GET; there is no retry
func (c *VPICClient) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &RequestError{Detail: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &RequestError{Detail: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Detail: err.Error(), Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{
			Detail: fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
		}
	}

	return body, nil
}
