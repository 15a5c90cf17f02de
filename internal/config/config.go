package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	AI     AIConfig     `mapstructure:"ai"`
	Cache  CacheConfig  `mapstructure:"cache"`
	JWT    JWTConfig    `mapstructure:"jwt"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// AIConfig 模型服务配置。Model 选主力模型：deepseek / gemini / auto，
// auto 表示按已配置的 API Key 自动挑选。
type AIConfig struct {
	Model     string      `mapstructure:"model"`
	MaxTokens int         `mapstructure:"max_tokens"`
	DeepSeek  ModelConfig `mapstructure:"deepseek"`
	Gemini    ModelConfig `mapstructure:"gemini"`
}

type ModelConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// CacheConfig 缓存段。Backend 取 auto / file / memory。
type CacheConfig struct {
	Backend                string `mapstructure:"backend"`
	Dir                    string `mapstructure:"dir"`
	MaxEntries             int    `mapstructure:"max_entries"`
	TTLHours               int    `mapstructure:"ttl_hours"`
	CleanupIntervalMinutes int    `mapstructure:"cleanup_interval_minutes"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// LoadConfig 读取配置文件
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config") // 配置文件名 (不带扩展名)
	viper.SetConfigType("yaml")   // 文件类型
	viper.AddConfigPath(".")      // 查找路径：根目录

	// 支持环境变量覆盖 (例如在 Docker 中)
	// 比如设置 TIANJI_AI_DEEPSEEK_API_KEY 可以覆盖 yaml 里的值
	viper.SetEnvPrefix("TIANJI")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	return &cfg, nil
}
