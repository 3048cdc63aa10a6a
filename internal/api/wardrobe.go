package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	apierrors "github.com/styleai/styleai-go/internal/errors"
	"github.com/styleai/styleai-go/internal/types"
)

// ListWardrobe retrieves every wardrobe item for the current user.
func ListWardrobe(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.WardrobeItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/wardrobe", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("list wardrobe", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apierrors.NewHTTPError(resp.StatusCode, readBody(resp), "list wardrobe")
	}

	var items []types.WardrobeItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}

// UploadWardrobeItem posts one clothing image as multipart form data
// (fields: file, category). The backend responds with the created item.
func UploadWardrobeItem(ctx context.Context, httpClient *http.Client, baseURL string, category types.Category, filename string, content io.Reader) (*types.WardrobeItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("category", string(category)); err != nil {
		return nil, err
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/api/wardrobe", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("upload wardrobe item", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apierrors.NewHTTPError(resp.StatusCode, readBody(resp), "upload wardrobe item")
	}

	var item types.WardrobeItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteWardrobeItem removes one item. The backend answers 200 or 204 on
// success.
func DeleteWardrobeItem(ctx context.Context, httpClient *http.Client, baseURL string, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/api/wardrobe/%d", baseURL, id)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return apierrors.NewNetworkError("delete wardrobe item", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return apierrors.NewHTTPError(resp.StatusCode, readBody(resp), "delete wardrobe item")
	}
	return nil
}

// RemoveBackground submits one batch of item ids for background removal and
// returns the updated subset the backend managed to process.
func RemoveBackground(ctx context.Context, httpClient *http.Client, baseURL string, ids []int64) ([]types.WardrobeItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(types.RemoveBackgroundRequest{ItemIDs: ids})
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/wardrobe/remove-background", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.NewNetworkError("remove background", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apierrors.NewHTTPError(resp.StatusCode, readBody(resp), "remove background")
	}

	var updated []types.WardrobeItem
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return nil, err
	}
	return updated, nil
}
