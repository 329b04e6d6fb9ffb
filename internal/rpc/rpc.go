package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dfx-site/internal/logger"
	"dfx-site/internal/models"
)

// HTTPClient 访问运行中的dfx-site服务
type HTTPClient interface {
	Get(path string, params map[string]interface{}) (*HTTPResponse, error)
	Post(path string, data interface{}) (*HTTPResponse, error)
	Close() error
}

// HTTPConfig 定义HTTP客户端配置
type HTTPConfig struct {
	Address string        // 服务侦听地址
	Network string        // unix,tcp
	Timeout time.Duration // 默认超时时间
	BaseURL string        // 基础URL
	Token   string        // 管理接口的Bearer令牌，可为空
}

/**
 * Client configuration from the server listen address
 * @param {string} address - Value of server.address, the first entry is used
 * @returns {*HTTPConfig} Config for a Unix socket when the entry starts with "unix:", TCP otherwise
 * @description
 * - A TCP address without host (":8080") is dialed on 127.0.0.1
 */
func ConfigFromAddress(address string) *HTTPConfig {
	c := &HTTPConfig{
		Network: "tcp",
		Address: "127.0.0.1:8080",
		Timeout: 5 * time.Second,
		BaseURL: "http://localhost",
	}
	first := strings.TrimSpace(strings.Split(address, ",")[0])
	switch {
	case strings.HasPrefix(first, "unix:"):
		c.Network = "unix"
		c.Address = strings.TrimPrefix(first, "unix:")
	case strings.HasPrefix(first, ":"):
		c.Address = "127.0.0.1" + first
	case first != "":
		c.Address = first
	}
	return c
}

// HTTPResponse 定义HTTP响应结构
type HTTPResponse struct {
	StatusCode int                 `json:"status_code"`
	Headers    map[string][]string `json:"headers"`
	Body       []byte              `json:"body"`
	Error      string              `json:"error"`
}

// Decode 将响应体解析到v
func (r *HTTPResponse) Decode(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type httpClient struct {
	config    *HTTPConfig
	client    *http.Client
	transport *http.Transport
}

/**
 * Create HTTP client dialing the configured address
 * @param {*HTTPConfig} config - Client configuration, nil for ConfigFromAddress("")
 * @returns {HTTPClient} HTTP client interface
 * @description
 * - Every request is sent to config.Address whatever host BaseURL names
 */
func NewHTTPClient(config *HTTPConfig) HTTPClient {
	if config == nil {
		config = ConfigFromAddress("")
	}
	dialer := &net.Dialer{Timeout: config.Timeout}
	transport := &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			return dialer.DialContext(ctx, config.Network, config.Address)
		},
	}
	return &httpClient{
		config:    config,
		transport: transport,
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
	}
}

// Get 发送GET请求
func (c *httpClient) Get(path string, params map[string]interface{}) (*HTTPResponse, error) {
	u, err := buildURL(c.config.BaseURL, path, params)
	if err != nil {
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}
	return c.do(http.MethodGet, u, nil)
}

// Post 发送POST请求，data序列化为JSON
func (c *httpClient) Post(path string, data interface{}) (*HTTPResponse, error) {
	u, err := buildURL(c.config.BaseURL, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}
	body, err := serializeData(data)
	if err != nil {
		return nil, err
	}
	return c.do(http.MethodPost, u, body)
}

func (c *httpClient) do(method, u string, body io.Reader) (*HTTPResponse, error) {
	logger.Debugf("Sending %s request to %s via %s://%s", method, u, c.config.Network, c.config.Address)

	ctx, cancel := context.WithTimeout(context.Background(), c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return deserializeResponse(resp)
}

func (c *httpClient) Close() error {
	c.transport.CloseIdleConnections()
	return nil
}

// buildURL 构建完整的URL
func buildURL(baseURL, path string, params map[string]interface{}) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(path, "/")

	if params != nil {
		q := u.Query()
		for key, value := range params {
			q.Set(key, fmt.Sprintf("%v", value))
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// serializeData 序列化请求数据
func serializeData(data interface{}) (io.Reader, error) {
	if data == nil {
		return nil, nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize data: %w", err)
	}
	return bytes.NewReader(jsonData), nil
}

// deserializeResponse 读取响应，非2xx时从ErrorResponse中提取错误信息
func deserializeResponse(resp *http.Response) (*HTTPResponse, error) {
	defer resp.Body.Close()
	httpResp := &HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	httpResp.Body = body
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return httpResp, nil
	}
	if len(body) == 0 {
		httpResp.Error = resp.Status
		return httpResp, nil
	}
	var errBody models.ErrorResponse
	if err := json.Unmarshal(body, &errBody); err != nil {
		httpResp.Error = resp.Status
	} else {
		httpResp.Error = errBody.Message
	}
	if httpResp.Error == "" {
		httpResp.Error = "Unknown error"
	}
	return httpResp, nil
}
