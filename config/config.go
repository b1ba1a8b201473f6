package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Remote configuration for the remote data service
	Remote *RemoteConfig `json:"remote" yaml:"remote"`

	// Cache configuration for the shared query cache
	Cache *CacheConfig `json:"cache" yaml:"cache"`

	// Session configuration for map editing sessions
	Session *SessionConfig `json:"session" yaml:"session"`

	// Tiles configuration for reference layer sources
	Tiles *TilesConfig `json:"tiles" yaml:"tiles"`

	// PubSub configuration for mutation event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Metrics configuration for the Prometheus endpoint
	Metrics *MetricsConfig `json:"metrics" yaml:"metrics"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// RemoteConfig defines the remote data service client
type RemoteConfig struct {
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`

	// Bearer token sent on every request (optional)
	Token string `json:"token" yaml:"token"`

	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Client-side throttling; zero disables it
	RequestsPerSecond float64 `json:"requestsPerSecond" yaml:"requestsPerSecond"`
	Burst             int     `json:"burst" yaml:"burst"`
}

// CacheConfig defines the query cache backend
type CacheConfig struct {
	// Backend type: "memory" (default) or "redis"
	Backend string `json:"backend" yaml:"backend"`

	// Entry lifetime; zero keeps entries until invalidated
	TTL time.Duration `json:"ttl" yaml:"ttl"`

	Redis struct {
		Addrs    []string `json:"addrs" yaml:"addrs"`
		Password string   `json:"password" yaml:"password"`
		DB       int      `json:"db" yaml:"db"`
		Prefix   string   `json:"prefix" yaml:"prefix"`
	} `json:"redis" yaml:"redis"`
}

// SessionConfig defines per-session editing behaviour
type SessionConfig struct {
	// Delay between all data being ready and the toolkit load
	SettleDelay time.Duration `json:"settleDelay" yaml:"settleDelay"`

	// Per-operation timeout for remote calls dispatched by a session
	OperationTimeout time.Duration `json:"operationTimeout" yaml:"operationTimeout"`

	// Websocket keepalive
	PingInterval time.Duration `json:"pingInterval" yaml:"pingInterval"`
	PongTimeout  time.Duration `json:"pongTimeout" yaml:"pongTimeout"`

	// Allowed browser origins for the websocket upgrade; empty allows all
	AllowedOrigins []string `json:"allowedOrigins" yaml:"allowedOrigins"`
}

// TilesConfig defines where reference layers are read from
type TilesConfig struct {
	// Number of tiles kept in memory by the PMTiles reader
	CacheSize int `json:"cacheSize" yaml:"cacheSize"`

	// Per reference layer ("boundaries", "rivers", "roads") source
	Layers map[string]*ReferenceSourceConfig `json:"layers" yaml:"layers"`
}

// ReferenceSourceConfig defines one reference layer source
type ReferenceSourceConfig struct {
	// Kind: "remote" (default), "pmtiles" or "geojson"
	Kind string `json:"kind" yaml:"kind"`

	// Source URL: PMTiles archive or GeoJSON blob (file://, gs://, s3://, https://)
	Source string `json:"source" yaml:"source"`

	// MVT layer name inside the PMTiles archive
	Layer string `json:"layer" yaml:"layer"`

	// Zoom level for tile reads
	Zoom int `json:"zoom" yaml:"zoom"`

	// Bounds to read, as [minLon, minLat, maxLon, maxLat]
	Bounds []float64 `json:"bounds" yaml:"bounds"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "none", "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// MetricsConfig defines the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: REMOTE_BASEURL -> remote.baseUrl (not remote.baseurl)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	applyDefaults(cfg)

	return cfg, nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// applyDefaults fills sections missing from the YAML file.
func applyDefaults(cfg *Config) {
	if cfg.Remote == nil {
		cfg.Remote = &RemoteConfig{}
	}
	if cfg.Cache == nil {
		cfg.Cache = &CacheConfig{Backend: "memory"}
	}
	if cfg.Session == nil {
		cfg.Session = &SessionConfig{}
	}
	if cfg.Session.SettleDelay <= 0 {
		cfg.Session.SettleDelay = time.Second
	}
	if cfg.Session.OperationTimeout <= 0 {
		cfg.Session.OperationTimeout = 30 * time.Second
	}
	if cfg.Session.PingInterval <= 0 {
		cfg.Session.PingInterval = 30 * time.Second
	}
	if cfg.Session.PongTimeout <= cfg.Session.PingInterval {
		cfg.Session.PongTimeout = cfg.Session.PingInterval * 2
	}
	if cfg.Tiles == nil {
		cfg.Tiles = &TilesConfig{}
	}
	if cfg.PubSub == nil {
		cfg.PubSub = &PubSubConfig{Provider: "none"}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &MetricsConfig{Enabled: true}
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
