package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	defaultClaimWindow          = 45 * time.Minute
	defaultArrivalRadiusMeters  = 30.0
	defaultExpirySweepInterval  = 30 * time.Second
	defaultMaxCommitAttempts    = 3
	defaultNotifierBufferSize   = 64
	defaultStoreDriver          = StoreDriverMemory
	defaultMQTTPositionTopic    = "collectors/+/positions"
	defaultRedisChangeChannel   = "numatu:collections:changes"
	defaultQueueConcurrency     = 10
	defaultAccessTokenTTL       = 12 * time.Hour
	defaultRealtimeSendBuffered = 256
	defaultPoolMonitorInterval  = 5 * time.Second
)

// Store drivers
const (
	StoreDriverMemory   = "memory"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

// Notification dispatch modes
const (
	NotificationModeInline   = "inline"
	NotificationModeWorker   = "worker"
	NotificationModeDisabled = "disabled"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		// InstanceID tags change events published by this process
		InstanceID string `json:"instanceId" yaml:"instanceId"`
		Log        Log    `json:"log" yaml:"log"`
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

	Store *StoreConfig `json:"store" yaml:"store"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
		// AccessTTL is the lifetime of issued access tokens
		AccessTTL time.Duration `json:"accessTTL" yaml:"accessTTL"`
	} `json:"secretKey" yaml:"secretKey"`

	// Lifecycle tunes the collection state machine and its timers
	Lifecycle *LifecycleConfig `json:"lifecycle" yaml:"lifecycle"`

	Notifier *NotifierConfig `json:"notifier" yaml:"notifier"`

	Notification *NotificationConfig `json:"notification" yaml:"notification"`

	// Firebase configuration for push notifications
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// QRCode configuration for confirmation QR codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// PubSub configuration for change event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	Redis *RedisConfig `json:"redis" yaml:"redis"`

	// Queue configuration for delayed expiry tasks
	Queue *QueueConfig `json:"queue" yaml:"queue"`

	// MQTT configuration for collector position ingress
	MQTT *MQTTConfig `json:"mqtt" yaml:"mqtt"`

	Realtime *RealtimeConfig `json:"realtime" yaml:"realtime"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// StoreConfig selects the collection store backend
type StoreConfig struct {
	Driver      string `json:"driver" yaml:"driver"`
	SQLitePath  string `json:"sqlitePath" yaml:"sqlitePath"`
	AutoMigrate bool   `json:"autoMigrate" yaml:"autoMigrate"`
	// SlowQueryThreshold marks statements logged as slow; zero disables the warning
	SlowQueryThreshold time.Duration `json:"slowQueryThreshold" yaml:"slowQueryThreshold"`
	// PoolMonitorInterval is how often Postgres pool waits are sampled
	PoolMonitorInterval time.Duration `json:"poolMonitorInterval" yaml:"poolMonitorInterval"`
}

// LifecycleConfig defines the handshake timing and distance policy
type LifecycleConfig struct {
	// ClaimWindow is how long a collector may hold a claim before it is released
	ClaimWindow time.Duration `json:"claimWindow" yaml:"claimWindow"`

	// ArrivalRadiusMeters triggers the automatic arrival transition
	ArrivalRadiusMeters float64 `json:"arrivalRadiusMeters" yaml:"arrivalRadiusMeters"`

	ExpirySweepInterval time.Duration `json:"expirySweepInterval" yaml:"expirySweepInterval"`

	// MaxMarketRadiusKm limits the market view around the observer, 0 disables the filter
	MaxMarketRadiusKm float64 `json:"maxMarketRadiusKm" yaml:"maxMarketRadiusKm"`

	MaxCommitAttempts int `json:"maxCommitAttempts" yaml:"maxCommitAttempts"`
}

type NotifierConfig struct {
	BufferSize int `json:"bufferSize" yaml:"bufferSize"`
}

// NotificationConfig decides where handshake push notifications are routed
type NotificationConfig struct {
	// Mode is "inline" (this process), "worker" (via pubsub to notifyworker) or "disabled"
	Mode string `json:"mode" yaml:"mode"`
}

// FirebaseConfig defines Firebase configuration for push notifications
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local", "google" or "redis"
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`

	// Redis channel (for redis provider)
	RedisChannel string `json:"redisChannel" yaml:"redisChannel"`
}

type RedisConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

// QueueConfig defines the asynq task queue, it shares the Redis connection settings
type QueueConfig struct {
	Enabled     bool `json:"enabled" yaml:"enabled"`
	Concurrency int  `json:"concurrency" yaml:"concurrency"`
}

type MQTTConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Broker   string `json:"broker" yaml:"broker"`
	ClientID string `json:"clientId" yaml:"clientId"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Topic    string `json:"topic" yaml:"topic"`
	QoS      byte   `json:"qos" yaml:"qos"`
}

type RealtimeConfig struct {
	Enabled        bool     `json:"enabled" yaml:"enabled"`
	AllowedOrigins []string `json:"allowedOrigins" yaml:"allowedOrigins"`
	SendBuffer     int      `json:"sendBuffer" yaml:"sendBuffer"`
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

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// LIFECYCLE_CLAIMWINDOW -> lifecycle.claimWindow
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
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

	cfg.applyDefaults()

	if cfg.Store.Driver == StoreDriverPostgres {
		if cfg.Postgres == nil {
			return nil, errors.New("postgres store selected but postgres section is missing")
		}
		// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// applyDefaults fills every optional section so consumers never deal with nil configs
func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if strings.TrimSpace(cfg.Env.InstanceID) == "" {
		cfg.Env.InstanceID = uuid.NewString()
	}

	if cfg.SecretKey.AccessTTL <= 0 {
		cfg.SecretKey.AccessTTL = defaultAccessTokenTTL
	}

	if cfg.Store == nil {
		cfg.Store = &StoreConfig{}
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = defaultStoreDriver
	}
	if cfg.Store.SlowQueryThreshold < 0 {
		cfg.Store.SlowQueryThreshold = 0
	}
	if cfg.Store.PoolMonitorInterval <= 0 {
		cfg.Store.PoolMonitorInterval = defaultPoolMonitorInterval
	}

	if cfg.Lifecycle == nil {
		cfg.Lifecycle = &LifecycleConfig{}
	}
	cfg.Lifecycle.applyDefaults()

	if cfg.Notifier == nil {
		cfg.Notifier = &NotifierConfig{}
	}
	if cfg.Notifier.BufferSize <= 0 {
		cfg.Notifier.BufferSize = defaultNotifierBufferSize
	}

	if cfg.Notification == nil {
		cfg.Notification = &NotificationConfig{}
	}
	if cfg.Notification.Mode == "" {
		cfg.Notification.Mode = NotificationModeDisabled
	}

	if cfg.PubSub != nil && cfg.PubSub.RedisChannel == "" {
		cfg.PubSub.RedisChannel = defaultRedisChangeChannel
	}

	if cfg.Queue != nil && cfg.Queue.Concurrency <= 0 {
		cfg.Queue.Concurrency = defaultQueueConcurrency
	}

	if cfg.MQTT != nil && cfg.MQTT.Topic == "" {
		cfg.MQTT.Topic = defaultMQTTPositionTopic
	}

	if cfg.Realtime != nil && cfg.Realtime.SendBuffer <= 0 {
		cfg.Realtime.SendBuffer = defaultRealtimeSendBuffered
	}
}

func (lc *LifecycleConfig) applyDefaults() {
	if lc.ClaimWindow <= 0 {
		lc.ClaimWindow = defaultClaimWindow
	}
	if lc.ArrivalRadiusMeters <= 0 {
		lc.ArrivalRadiusMeters = defaultArrivalRadiusMeters
	}
	if lc.ExpirySweepInterval <= 0 {
		lc.ExpirySweepInterval = defaultExpirySweepInterval
	}
	if lc.MaxCommitAttempts <= 0 {
		lc.MaxCommitAttempts = defaultMaxCommitAttempts
	}
	if lc.MaxMarketRadiusKm < 0 {
		lc.MaxMarketRadiusKm = 0
	}
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

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}

// Addr returns the host:port of the Redis server, defaulting to the local instance
func (r *RedisConfig) Addr() string {
	host := strings.TrimSpace(r.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := r.Port
	if port <= 0 {
		port = 6379
	}

	return host + ":" + strconv.Itoa(port)
}
