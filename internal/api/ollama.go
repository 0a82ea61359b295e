package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	apierrors "github.com/Rithvik-katakamm/llama-utils/internal/errors"
	"github.com/Rithvik-katakamm/llama-utils/internal/models"
)

// ListModels returns the models installed on the server, reported by the
// native tags endpoint.
func (c *Client) ListModels(ctx context.Context) ([]models.ModelInfo, error) {
	body, err := c.getNative(ctx, models.EndpointTags)
	if err != nil {
		return nil, err
	}

	var installed []models.ModelInfo
	gjson.GetBytes(body, "models").ForEach(func(_, m gjson.Result) bool {
		installed = append(installed, models.ModelInfo{
			Name:       m.Get("name").String(),
			Size:       m.Get("size").Int(),
			ModifiedAt: m.Get("modified_at").Time(),
		})
		return true
	})
	return installed, nil
}

// HasModel reports whether the named model is installed. Tags are matched
// with and without the :latest suffix.
func (c *Client) HasModel(ctx context.Context, name string) (bool, error) {
	installed, err := c.ListModels(ctx)
	if err != nil {
		return false, err
	}
	for _, m := range installed {
		if m.Name == name || m.Name == name+":latest" {
			return true, nil
		}
	}
	return false, nil
}

// Version returns the server version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	body, err := c.getNative(ctx, models.EndpointVersion)
	if err != nil {
		return "", err
	}

	version := gjson.GetBytes(body, "version").String()
	if version == "" {
		return "", apierrors.NewParseError("version missing from response", models.EndpointVersion)
	}
	return version, nil
}

// Ping checks that the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Version(ctx)
	return err
}

func (c *Client) getNative(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.nativeURL(endpoint), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.mapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apierrors.NewAPIError(resp.StatusCode, endpoint, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}
