package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"quotes-backend/models"
	"time"
)

// QuoteClient 上游随机名言服务的客户端（dummyjson 风格接口）
// 上游不支持分类过滤，这里也不假装支持，纯透传
type QuoteClient struct {
	BaseURL string
	client  *http.Client
}

func NewQuoteClient(baseURL string) *QuoteClient {
	return &QuoteClient{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Random 拉一条随机名言
func (c *QuoteClient) Random(ctx context.Context) (*models.RandomQuote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/quotes/random", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求上游名言服务失败: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("上游名言服务返回 %d", resp.StatusCode)
	}

	var quote models.RandomQuote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, fmt.Errorf("解析上游返回失败: %v", err)
	}
	return &quote, nil
}
