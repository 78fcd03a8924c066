package geolocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	usecaseErrors "github.com/mealmeet-team/mealmeet/internal/usecase/errors"
	"github.com/mealmeet-team/mealmeet/internal/usecase/invitation"
	"github.com/mealmeet-team/mealmeet/pkg/config"
)

// Client talks to the device-location bridge, which relays the last
// position fix pushed by the user's device. The bridge answers 403 when
// the user revoked location permission and 404/503 when no recent fix
// is available.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a new geolocation client
func New(cfg *config.GeolocationConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

type positionResponse struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Accuracy float64 `json:"accuracy"`
}

// CurrentPosition resolves the user's current device position. The
// context deadline bounds the call; a timeout surfaces as
// ErrLocationUnavailable so the caller can suggest retrying.
func (c *Client) CurrentPosition(ctx context.Context, userID uuid.UUID) (*invitation.Position, error) {
	url := fmt.Sprintf("%s/v1/positions/%s", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build position request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return nil, fmt.Errorf("%w: position request timed out", usecaseErrors.ErrLocationUnavailable)
		}
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrLocationUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusForbidden:
		return nil, usecaseErrors.ErrLocationPermissionDenied
	case http.StatusNotFound, http.StatusServiceUnavailable:
		return nil, usecaseErrors.ErrLocationUnavailable
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", usecaseErrors.ErrLocationUnavailable, resp.StatusCode)
	}

	var pos positionResponse
	if err := json.NewDecoder(resp.Body).Decode(&pos); err != nil {
		return nil, fmt.Errorf("%w: invalid position payload: %v", usecaseErrors.ErrLocationUnavailable, err)
	}

	return &invitation.Position{Lat: pos.Lat, Lng: pos.Lng, Accuracy: pos.Accuracy}, nil
}
