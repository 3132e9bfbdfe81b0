package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-client/utils"
)

// HTTPCaller memanggil method remote lewat endpoint /api/method/<nama>.
type HTTPCaller struct {
	BaseURL    string
	AuthToken  string
	HTTPClient *http.Client
}

// NewHTTPCaller membuat caller dengan timeout default 15 detik.
func NewHTTPCaller(baseURL, authToken string) *HTTPCaller {
	return &HTTPCaller{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		AuthToken: authToken,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Call mengirim satu request dan men-decode amplop {success, message, data}.
func (c *HTTPCaller) Call(method string, args map[string]interface{}) (*Result, error) {
	if args == nil {
		args = map[string]interface{}{}
	}

	body, err := json.Marshal(args)
	if err != nil {
		return nil, &utils.TransportError{Method: method, Err: err}
	}

	url := fmt.Sprintf("%s/api/method/%s", c.BaseURL, method)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &utils.TransportError{Method: method, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &utils.TransportError{Method: method, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &utils.TransportError{Method: method, Err: err}
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		// Server membalas bukan JSON amplop (mis. HTML error page dari proxy)
		return nil, &utils.TransportError{
			Method: method,
			Err:    fmt.Errorf("unexpected response (status %d)", resp.StatusCode),
		}
	}

	if resp.StatusCode >= 500 {
		return nil, &utils.TransportError{
			Method: method,
			Err:    fmt.Errorf("server error (status %d)", resp.StatusCode),
		}
	}

	return &result, nil
}
