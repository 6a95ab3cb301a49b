package gateway

import (
	"context"
	"net/http"
)

// OriginProxy forwards requests to the remote commerce origin. Bodies
// stream through untouched, so multipart uploads pass as-is.
type OriginProxy struct {
	baseURL string
	client  *http.Client
}

func NewOriginProxy(baseURL string, client *http.Client) *OriginProxy {
	return &OriginProxy{
		baseURL: baseURL,
		client:  client,
	}
}

func (p *OriginProxy) Forward(ctx context.Context, r *http.Request, path string) (*http.Response, error) {
	target := p.baseURL + path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, r.Body)
	if err != nil {
		return nil, err
	}

	if contentType := r.Header.Get("Content-Type"); contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if accept := r.Header.Get("Accept"); accept != "" {
		req.Header.Set("Accept", accept)
	}

	return p.client.Do(req)
}
