package api

import (
	"io"
	"net/http"
)

// readBody drains up to 64 KiB of an error response so classification can
// pick up the backend's detail field. Best effort; never fails.
func readBody(resp *http.Response) []byte {
	b, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil
	}
	return b
}
