package notifyrepo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"schooldesk/util/httpx"
)

type httpRepo struct {
	url    string
	secret string
	client *http.Client
}

func NewHTTP(url, secret string) Repo {
	return &httpRepo{url: url, secret: secret, client: httpx.Client()}
}

func (r *httpRepo) Send(ctx context.Context, ev Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.secret != "" {
		req.Header.Set("X-Notify-Secret", r.secret)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("notify webhook failed: %s", resp.Status)
	}
	return nil
}
