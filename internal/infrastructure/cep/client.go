// Package cep resolves Brazilian postal codes through the public ViaCEP API.
package cep

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"locafest/internal/core/apperror"
	"locafest/internal/domain/client"
)

const defaultBaseURL = "https://viacep.com.br"

// Client implements client.AddressLookup against ViaCEP.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type viaCEPResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

// Lookup resolves a sanitized 8-digit CEP into an address. Unknown codes map
// to NotFound; a downstream failure maps to Unavailable so callers can tell
// bad input from a broken collaborator.
func (c *Client) Lookup(ctx context.Context, cep string) (*client.Address, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperror.NewUnavailable("viacep", err)
	}
	defer resp.Body.Close()

	// ViaCEP answers 400 for malformed codes and 200 with erro=true for
	// well-formed codes that do not exist.
	if resp.StatusCode == http.StatusBadRequest {
		return nil, apperror.NewValidation("malformed CEP")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperror.NewUnavailable("viacep",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperror.NewUnavailable("viacep", fmt.Errorf("decode response: %w", err))
	}
	if body.Erro {
		return nil, apperror.NewNotFound("address", cep)
	}

	return &client.Address{
		CEP:      body.CEP,
		Street:   body.Logradouro,
		District: body.Bairro,
		City:     body.Localidade,
		State:    body.UF,
	}, nil
}
