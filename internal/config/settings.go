package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"webmall/evaluation/webmall/checklist"
	"webmall/internal/observability"
)

// EnvPrefix scopes environment overrides, e.g. WEBMALL_PORT.
const EnvPrefix = "WEBMALL"

// Settings configure the evaluation server and CLI.
type Settings struct {
	Port             string           `mapstructure:"port"`
	Environment      string           `mapstructure:"environment"`
	AllowedOrigins   []string         `mapstructure:"allowed_origins"`
	TaskSetPath      string           `mapstructure:"task_set_path"`
	EnvFile          string           `mapstructure:"env_file"`
	Weighting        string           `mapstructure:"weighting"`
	CompletionToken  string           `mapstructure:"completion_token"`
	AnswerSource     string           `mapstructure:"answer_source"`
	SessionCacheSize int              `mapstructure:"session_cache_size"`
	Log              LogSettings      `mapstructure:"log"`
	Policies         []PolicySettings `mapstructure:"policies"`

	Tracing observability.TracingConfig `mapstructure:"tracing"`
}

type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PolicySettings declares an extra weighting policy.
type PolicySettings struct {
	Name         string  `mapstructure:"name"`
	Answers      float64 `mapstructure:"answers"`
	ShopVisits   float64 `mapstructure:"shop_visits"`
	ProductPages float64 `mapstructure:"product_pages"`
	CartIDPrefix string  `mapstructure:"cart_id_prefix"`
}

// WeightPolicy converts the declaration into a checklist policy.
func (p PolicySettings) WeightPolicy() checklist.WeightPolicy {
	prefix := p.CartIDPrefix
	if prefix == "" {
		prefix = "cart"
	}
	return checklist.WeightPolicy{
		Name: p.Name,
		Shares: map[checklist.Group]float64{
			checklist.GroupAnswers:      p.Answers,
			checklist.GroupShopVisits:   p.ShopVisits,
			checklist.GroupProductPages: p.ProductPages,
		},
		CartIDPrefix: prefix,
	}
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		Port:             "8090",
		Environment:      "development",
		AllowedOrigins:   []string{"http://localhost:3000"},
		TaskSetPath:      "configs/task_sets.json",
		EnvFile:          DefaultEnvFile,
		Weighting:        checklist.PolicyDefault,
		CompletionToken:  "[DONE]",
		AnswerSource:     "page",
		SessionCacheSize: 256,
		Log: LogSettings{
			Level:  "info",
			Format: "text",
		},
		Tracing: observability.TracingConfig{
			Exporter:    "otlp",
			SampleRate:  1.0,
			ServiceName: "webmall-eval",
		},
	}
}

func setDefaults(v *viper.Viper) {
	def := DefaultSettings()
	v.SetDefault("port", def.Port)
	v.SetDefault("environment", def.Environment)
	v.SetDefault("allowed_origins", def.AllowedOrigins)
	v.SetDefault("task_set_path", def.TaskSetPath)
	v.SetDefault("env_file", def.EnvFile)
	v.SetDefault("weighting", def.Weighting)
	v.SetDefault("completion_token", def.CompletionToken)
	v.SetDefault("answer_source", def.AnswerSource)
	v.SetDefault("session_cache_size", def.SessionCacheSize)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("tracing.enabled", def.Tracing.Enabled)
	v.SetDefault("tracing.exporter", def.Tracing.Exporter)
	v.SetDefault("tracing.otlp_endpoint", def.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.zipkin_endpoint", def.Tracing.ZipkinEndpoint)
	v.SetDefault("tracing.sample_rate", def.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", def.Tracing.ServiceName)
	v.SetDefault("tracing.service_version", def.Tracing.ServiceVersion)
}

// LoadSettings merges defaults, the optional config file at path and
// WEBMALL_* environment overrides into v and decodes the result. Flags bound
// to v by the caller take precedence over all of them.
func LoadSettings(v *viper.Viper, path string) (Settings, error) {
	if v == nil {
		v = viper.New()
	}
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	if settings.SessionCacheSize <= 0 {
		settings.SessionCacheSize = DefaultSettings().SessionCacheSize
	}
	return settings, nil
}

// Registry builds the policy registry with the built-in and declared policies.
func (s Settings) Registry() (*checklist.PolicyRegistry, error) {
	registry := checklist.NewPolicyRegistry()
	for _, p := range s.Policies {
		if err := registry.Register(p.WeightPolicy()); err != nil {
			return nil, err
		}
	}
	if _, err := registry.Lookup(s.Weighting); err != nil {
		return nil, err
	}
	return registry, nil
}
