package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"
)

// 命理大师人设。输出必须是 JSON，长度约束写进 System Prompt 比写进
// 用户模板更稳定。
const deepSeekSystemPrompt = "你是一位精通中国传统命理学的大师，深谙八字、紫微斗数与易经，" +
	"同时具备现代心理学知识。请严格按照JSON格式返回命理分析结果。" +
	"输出内容需要详细完整，总字数控制在6000-9000字范围内。"

// DeepSeekClient 通过 OpenAI 兼容接口调用 DeepSeek。
type DeepSeekClient struct {
	modelName string
	maxTokens int
	client    *openai.Client
}

// NewDeepSeekClient 构造函数。baseUrl 指向 DeepSeek 的兼容端点。
func NewDeepSeekClient(apiKey, baseUrl, modelName string, maxTokens int) *DeepSeekClient {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseUrl

	if maxTokens <= 0 {
		maxTokens = 8000
	}
	return &DeepSeekClient{
		modelName: modelName,
		maxTokens: maxTokens,
		client:    openai.NewClientWithConfig(config),
	}
}

func (d *DeepSeekClient) Name() string { return "deepseek" }

// GenerateText 单轮非流式生成。
func (d *DeepSeekClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: d.modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: deepSeekSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   d.maxTokens,
	}

	resp, err := d.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("DeepSeek 调用失败: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("DeepSeek 返回空结果")
	}

	slog.Info("DeepSeek 调用完成",
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"total_tokens", resp.Usage.TotalTokens)

	return resp.Choices[0].Message.Content, nil
}
