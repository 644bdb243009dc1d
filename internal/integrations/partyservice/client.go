package partyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client HTTP клиент сервиса партий (identity/workflow resolution)
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     Logger
}

// NewClient создает новый клиент сервиса партий
func NewClient(baseURL string, timeout time.Duration, logger Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// ResolveRequester сопоставляет контактные данные гостя с персоной
func (c *Client) ResolveRequester(ctx context.Context, contact ContactInfo) (*Requester, error) {
	body, err := json.Marshal(contact)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal contact info: %v", ErrRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/persons/resolve", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("ResolveRequester: request failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrRequesterNotResolved
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var requester Requester
	if err := json.NewDecoder(resp.Body).Decode(&requester); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrRequestFailed, err)
	}

	return &requester, nil
}

// GetActiveParty получает активную партию гостя для объекта
// Возвращает ErrPartyNotFound, если активной партии нет
func (c *Client) GetActiveParty(ctx context.Context, personID, propertyID uuid.UUID) (*Party, error) {
	endpoint := fmt.Sprintf("%s/api/v1/parties/active?personId=%s&propertyId=%s",
		c.baseURL, url.QueryEscape(personID.String()), url.QueryEscape(propertyID.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrRequestFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("GetActiveParty: request failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrPartyNotFound
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var party Party
	if err := json.NewDecoder(resp.Body).Decode(&party); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrRequestFailed, err)
	}

	return &party, nil
}

// CreateParty создает новую партию с назначенным владельцем
func (c *Client) CreateParty(ctx context.Context, createReq CreatePartyRequest) (*Party, error) {
	body, err := json.Marshal(createReq)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal create request: %v", ErrRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/parties", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("CreateParty: request failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var party Party
	if err := json.NewDecoder(resp.Body).Decode(&party); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrRequestFailed, err)
	}

	return &party, nil
}
