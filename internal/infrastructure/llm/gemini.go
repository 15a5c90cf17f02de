package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GeminiClient 直接走 Google generateContent REST 接口。
// Gemini 的请求/响应结构和 OpenAI 不兼容，不能复用 go-openai。
type GeminiClient struct {
	apiKey    string
	baseUrl   string
	modelName string
	maxTokens int
	httpc     *http.Client
}

// NewGeminiClient 构造函数。baseUrl 为空时用官方端点。
func NewGeminiClient(apiKey, baseUrl, modelName string, maxTokens int) *GeminiClient {
	if baseUrl == "" {
		baseUrl = "https://generativelanguage.googleapis.com/v1beta"
	}
	if maxTokens <= 0 {
		maxTokens = 8000
	}
	return &GeminiClient{
		apiKey:    apiKey,
		baseUrl:   baseUrl,
		modelName: modelName,
		maxTokens: maxTokens,
		httpc:     &http.Client{Timeout: 3 * time.Minute},
	}
}

func (g *GeminiClient) Name() string { return "gemini" }

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateText 单轮生成。
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenConfig{
			Temperature:     0.7,
			MaxOutputTokens: g.maxTokens,
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseUrl, g.modelName, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("Gemini 调用失败: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var out geminiResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("Gemini 响应解析失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if out.Error != nil {
			msg = out.Error.Message
		}
		return "", fmt.Errorf("Gemini API 错误: %s", msg)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("Gemini 返回空结果")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
