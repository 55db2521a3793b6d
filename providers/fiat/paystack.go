package fiat

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/CardHaven/CardHaven-Backend/providers"
	"github.com/CardHaven/CardHaven-Backend/services/monitoring/logging"
	"github.com/CardHaven/CardHaven-Backend/utils"
)

type PaystackProvider struct {
	providers.BaseProvider
	config *FiatConfig
}

type FiatConfig struct {
	FiatProviderName    string `mapstructure:"FIAT_PROVIDER_NAME"`
	FiatProviderKey     string `mapstructure:"PAYSTACK_KEY"`
	FiatProviderBaseUrl string `mapstructure:"PAYSTACK_BASE_URL"`
}

func NewFiatProvider(logger *logging.Logger) *PaystackProvider {

	var c FiatConfig

	err := utils.LoadCustomConfig(utils.EnvPath, &c)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	return &PaystackProvider{
		BaseProvider: providers.BaseProvider{
			Name:    c.FiatProviderName,
			BaseURL: c.FiatProviderBaseUrl,
			APIKey:  c.FiatProviderKey,
			Client: &http.Client{
				Timeout: time.Second * 30,
			},
			Logger: logger,
		},
		config: &c,
	}
}

// InitializeTransaction registers a pending charge with Paystack and returns
// the hosted checkout URL the client is redirected to.
func (p *PaystackProvider) InitializeTransaction(request InitializeTransactionRequest) (*InitializedTransaction, error) {
	base, err := url.Parse(p.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid provider base URL: %v", err.Error())
	}

	// Path params
	base.Path += "transaction/initialize"

	resp, err := p.MakeRequest("POST", base.String(), request, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Check the status code
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d \nURL: %s", resp.StatusCode, resp.Request.URL)
	}

	// Decode the response body
	var response Response[InitializedTransaction]
	decoder := json.NewDecoder(resp.Body)
	err = decoder.Decode(&response)
	if err != nil {
		return nil, fmt.Errorf("error decoding response body: %w", err)
	}

	if !response.Status {
		return nil, fmt.Errorf("provider rejected initialization: %s", response.Message)
	}

	return &response.Data, nil
}

// VerifyTransaction asks Paystack for the settled state of a reference.
// This is the only confirmation path for card funding; callback URLs are
// never trusted on their own.
func (p *PaystackProvider) VerifyTransaction(reference string) (*VerifiedTransaction, error) {
	base, err := url.Parse(p.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid provider base URL: %v", err.Error())
	}

	// Path params
	base.Path += fmt.Sprintf("transaction/verify/%s", url.PathEscape(reference))

	resp, err := p.MakeRequest("GET", base.String(), nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Check the status code
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d \nURL: %s", resp.StatusCode, resp.Request.URL)
	}

	// Decode the response body
	var response Response[VerifiedTransaction]
	decoder := json.NewDecoder(resp.Body)
	err = decoder.Decode(&response)
	if err != nil {
		return nil, fmt.Errorf("error decoding response body: %w", err)
	}

	if !response.Status {
		return nil, fmt.Errorf("provider rejected verification: %s", response.Message)
	}

	return &response.Data, nil
}
