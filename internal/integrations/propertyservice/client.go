package propertyservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/max-tl-2000/red-sub012/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Cache интерфейс кеша ответов (см. cache.go, реализация поверх Redis)
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{})
}

// Client HTTP клиент сервиса объектов и команд
// Настройки объекта и команды запрашиваются на каждом бронировании,
// поэтому ответы кешируются
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      Cache
	logger     Logger
}

// NewClient создает новый клиент сервиса объектов
// cache может быть nil - тогда кеширование отключено
func NewClient(baseURL string, timeout time.Duration, cache Cache, logger Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		logger:     logger,
	}
}

// GetPropertySettings получает настройки объекта (таймзона, доступные типы туров)
func (c *Client) GetPropertySettings(ctx context.Context, propertyID uuid.UUID) (*PropertySettings, error) {
	cacheKey := "property_settings:" + propertyID.String()

	var settings PropertySettings
	if c.cacheGet(ctx, cacheKey, &settings) {
		return &settings, nil
	}

	endpoint := fmt.Sprintf("%s/api/v1/properties/%s/settings", c.baseURL, propertyID)
	if err := c.getJSON(ctx, endpoint, &settings, ErrPropertyNotFound); err != nil {
		return nil, err
	}

	c.cacheSet(ctx, cacheKey, settings)
	return &settings, nil
}

// GetPropertyTimezone получает таймзону объекта
func (c *Client) GetPropertyTimezone(ctx context.Context, propertyID uuid.UUID) (*time.Location, error) {
	settings, err := c.GetPropertySettings(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	tz, err := time.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid property timezone %q: %v", ErrRequestFailed, settings.Timezone, err)
	}

	return tz, nil
}

// GetTeamSettings получает настройки команды (длительность слота, стратегия маршрутизации)
func (c *Client) GetTeamSettings(ctx context.Context, teamID uuid.UUID) (*TeamSettings, error) {
	cacheKey := "team_settings:" + teamID.String()

	var settings TeamSettings
	if c.cacheGet(ctx, cacheKey, &settings) {
		return &settings, nil
	}

	endpoint := fmt.Sprintf("%s/api/v1/teams/%s/settings", c.baseURL, teamID)
	if err := c.getJSON(ctx, endpoint, &settings, ErrTeamNotFound); err != nil {
		return nil, err
	}

	if settings.SlotDurationMinutes == 0 {
		settings.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if settings.WorkdayEndMinutes == 0 {
		settings.WorkdayStartMinutes = domain.DefaultWorkdayStartMinutes
		settings.WorkdayEndMinutes = domain.DefaultWorkdayEndMinutes
	}

	c.cacheSet(ctx, cacheKey, settings)
	return &settings, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrRequestFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("propertyservice: GET %s failed: %v", endpoint, err)
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return notFoundErr
	default:
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrRequestFailed, err)
	}

	return nil
}

func (c *Client) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if c.cache == nil {
		return false
	}
	return c.cache.Get(ctx, key, dest)
}

func (c *Client) cacheSet(ctx context.Context, key string, value interface{}) {
	if c.cache != nil {
		c.cache.Set(ctx, key, value)
	}
}
