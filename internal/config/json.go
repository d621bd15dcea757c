package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration wraps time.Duration so that JSON config files can use
// human-readable strings ("30s", "1h") instead of nanosecond integers.
type Duration struct {
	time.Duration
}

// UnmarshalJSON parses either a JSON number (nanoseconds) or a duration
// string accepted by time.ParseDuration.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("error parsing duration string: %w", err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration value: %v", v)
	}
}

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations for file-based configuration.
type StructuredJSONConfig struct {
	App struct {
		PasswordHashKey      string   `json:"password_hash_key"`
		TokenSignKey         string   `json:"token_sign_key"`
		TokenIssuer          string   `json:"token_issuer"`
		TokenDuration        Duration `json:"token_duration"`
		EphemeralTokenKey    string   `json:"ephemeral_token_key"`
		EncryptionSecret     string   `json:"encryption_secret"`
		IntegrityHashKey     string   `json:"integrity_hash_key"`
		LegacyCardPassphrase string   `json:"legacy_card_passphrase"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Blob struct {
			Endpoint       string `json:"endpoint"`
			Region         string `json:"region"`
			AccessKey      string `json:"access_key"`
			SecretKey      string `json:"secret_key"`
			DocumentBucket string `json:"document_bucket"`
			AssetBucket    string `json:"asset_bucket"`
		} `json:"blob,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		ScanCounterQueueSize int `json:"scan_counter_queue_size"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			PasswordHashKey:      jsonCfg.App.PasswordHashKey,
			TokenSignKey:         jsonCfg.App.TokenSignKey,
			TokenIssuer:          jsonCfg.App.TokenIssuer,
			TokenDuration:        jsonCfg.App.TokenDuration.Duration,
			EphemeralTokenKey:    jsonCfg.App.EphemeralTokenKey,
			EncryptionSecret:     jsonCfg.App.EncryptionSecret,
			IntegrityHashKey:     jsonCfg.App.IntegrityHashKey,
			LegacyCardPassphrase: jsonCfg.App.LegacyCardPassphrase,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
			Blob: Blob{
				Endpoint:       jsonCfg.Storage.Blob.Endpoint,
				Region:         jsonCfg.Storage.Blob.Region,
				AccessKey:      jsonCfg.Storage.Blob.AccessKey,
				SecretKey:      jsonCfg.Storage.Blob.SecretKey,
				DocumentBucket: jsonCfg.Storage.Blob.DocumentBucket,
				AssetBucket:    jsonCfg.Storage.Blob.AssetBucket,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: jsonCfg.Server.RequestTimeout.Duration,
		},
		Workers: Workers{
			ScanCounterQueueSize: jsonCfg.Workers.ScanCounterQueueSize,
		},
	}

	return cfg, nil
}
