package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/atlasground/freedom/internal/http"
	"github.com/atlasground/freedom/pkg/freedom"
)

const gatewayLicensesPath = "gateway-licenses"

// GatewayLicensesClient implements freedom.GatewayLicensesClient.
type GatewayLicensesClient struct {
	httpClient *http.Client
}

// NewGatewayLicensesClient creates a new gateway licenses client.
func NewGatewayLicensesClient(httpClient *http.Client) *GatewayLicensesClient {
	return &GatewayLicensesClient{
		httpClient: httpClient,
	}
}

// List implements freedom.GatewayLicensesClient.List. The endpoint answers
// with either a bare array or a HAL page.
func (c *GatewayLicensesClient) List(ctx context.Context) ([]freedom.GatewayLicense, error) {
	resp, err := c.httpClient.Get(ctx, gatewayLicensesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("listing gateway licenses: %w", err)
	}

	return decodeList[freedom.GatewayLicense]("gateway licenses", resp.Body)
}

// Get implements freedom.GatewayLicensesClient.Get.
func (c *GatewayLicensesClient) Get(ctx context.Context, id int) (*freedom.GatewayLicense, error) {
	resp, err := c.httpClient.Get(ctx, gatewayLicensesPath+"/"+strconv.Itoa(id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting gateway license %d: %w", id, err)
	}

	return decodeLicense(resp.Body)
}

// Verify implements freedom.GatewayLicensesClient.Verify.
func (c *GatewayLicensesClient) Verify(ctx context.Context, licenseKey string) (*freedom.GatewayLicenseVerification, error) {
	resp, err := c.httpClient.Post(ctx, gatewayLicensesPath+"/verify", map[string]string{"licenseKey": licenseKey})
	if err != nil {
		return nil, fmt.Errorf("verifying gateway license: %w", err)
	}

	var verification freedom.GatewayLicenseVerification

	err = json.Unmarshal(resp.Body, &verification)
	if err != nil {
		return nil, freedom.NewDecodeError("license verification", err)
	}

	return &verification, nil
}

// Regenerate implements freedom.GatewayLicensesClient.Regenerate.
func (c *GatewayLicensesClient) Regenerate(ctx context.Context, id int) (*freedom.GatewayLicense, error) {
	resp, err := c.httpClient.Post(ctx, gatewayLicensesPath+"/"+strconv.Itoa(id)+"/regenerate", map[string]string{})
	if err != nil {
		return nil, fmt.Errorf("regenerating gateway license %d: %w", id, err)
	}

	return decodeLicense(resp.Body)
}

func decodeLicense(data []byte) (*freedom.GatewayLicense, error) {
	var license freedom.GatewayLicense

	err := json.Unmarshal(data, &license)
	if err != nil {
		return nil, freedom.NewDecodeError("gateway license", err)
	}

	return &license, nil
}
