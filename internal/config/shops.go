package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"

	"webmall/evaluation/webmall/shops"
)

// DefaultEnvFile is the fallback key-value file consulted for shop URLs.
const DefaultEnvFile = ".env"

// EnvLookup resolves the value for an environment variable.
type EnvLookup func(string) (string, bool)

// DefaultEnvLookup delegates to os.LookupEnv.
func DefaultEnvLookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// ShopOption customises shop URL resolution.
type ShopOption func(*shopOptions)

type shopOptions struct {
	envLookup EnvLookup
	envFile   string
}

// WithEnv supplies a custom environment lookup implementation.
func WithEnv(lookup EnvLookup) ShopOption {
	return func(o *shopOptions) {
		o.envLookup = lookup
	}
}

// WithEnvFile sets the fallback dotenv file. An empty path disables it.
func WithEnvFile(path string) ShopOption {
	return func(o *shopOptions) {
		o.envFile = path
	}
}

// LoadShopURLs resolves SHOP1_URL..SHOP4_URL and FRONTEND_URL from the
// process environment, falling back to the dotenv file for missing keys.
func LoadShopURLs(opts ...ShopOption) (shops.URLs, error) {
	options := shopOptions{
		envLookup: DefaultEnvLookup,
		envFile:   DefaultEnvFile,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.envLookup == nil {
		options.envLookup = DefaultEnvLookup
	}

	values := make(map[string]string, len(shops.AllKeys()))
	var missing []string
	for _, key := range shops.AllKeys() {
		if value, ok := options.envLookup(key); ok && strings.TrimSpace(value) != "" {
			values[key] = strings.TrimSpace(value)
			continue
		}
		missing = append(missing, key)
	}

	if len(missing) > 0 && options.envFile != "" {
		fileValues, err := readEnvFile(options.envFile)
		if err != nil {
			return shops.URLs{}, err
		}
		for _, key := range missing {
			if value := strings.TrimSpace(fileValues.GetString(key)); value != "" {
				values[key] = value
			}
		}
	}
	return shops.FromMap(values)
}

// readEnvFile parses a dotenv file with viper. A missing file yields an
// empty set so that the caller reports the missing keys instead.
func readEnvFile(path string) (*viper.Viper, error) {
	v := viper.New()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return v, nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return v, nil
}
