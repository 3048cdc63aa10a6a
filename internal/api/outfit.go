package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apierrors "github.com/styleai/styleai-go/internal/errors"
	"github.com/styleai/styleai-go/internal/types"
)

// PreviewWeather resolves the forecast for a request before generation so the
// caller can display it.
func PreviewWeather(ctx context.Context, httpClient *http.Client, baseURL string, req types.OutfitGenerateRequest) (*types.WeatherPreview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/outfit/preview-weather", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("preview weather", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apierrors.NewHTTPError(resp.StatusCode, readBody(resp), "preview weather")
	}

	var w types.WeatherPreview
	if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Generate asks the backend to synthesize a new outfit for the request.
func Generate(ctx context.Context, httpClient *http.Client, baseURL string, req types.OutfitGenerateRequest) (*types.GenerateResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/outfit/generate", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("generate outfit", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apierrors.NewHTTPError(resp.StatusCode, readBody(resp), "generate outfit")
	}

	var gr types.GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, err
	}
	return &gr, nil
}

// SuggestFromWardrobe asks the backend to pick matching items from the user's
// existing wardrobe and returns the rationale plus the chosen items.
func SuggestFromWardrobe(ctx context.Context, httpClient *http.Client, baseURL string, req types.OutfitGenerateRequest) (*types.SuggestionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/outfit/suggest-from-wardrobe", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("suggest outfit", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apierrors.NewHTTPError(resp.StatusCode, readBody(resp), "suggest outfit")
	}

	var sr types.SuggestionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}
	return &sr, nil
}

// History retrieves past outfit requests, newest first.
func History(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.OutfitHistoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/outfit/history", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("outfit history", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apierrors.NewHTTPError(resp.StatusCode, readBody(resp), "outfit history")
	}

	var records []types.OutfitHistoryRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetOutfit retrieves a single persisted outfit request by identifier.
func GetOutfit(ctx context.Context, httpClient *http.Client, baseURL string, id int64) (*types.OutfitHistoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/outfit/%d", baseURL, id)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("get outfit", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apierrors.NewHTTPError(resp.StatusCode, readBody(resp), "get outfit")
	}

	var rec types.OutfitHistoryRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
