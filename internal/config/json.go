package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// human-readable durations.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey      string   `json:"token_sign_key"`
		TokenIssuer       string   `json:"token_issuer"`
		TokenDuration     Duration `json:"token_duration"`
		TokenVersionCheck bool     `json:"token_version_check"`
		PasswordCost      int      `json:"password_cost"`
		OTPBytes          int      `json:"otp_bytes"`
		PublicURL         string   `json:"public_url"`
		AdminEmail        string   `json:"admin_email"`
		LogLevel          string   `json:"log_level"`
		Version           string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN          string `json:"dsn"`
			MaxOpenConns int    `json:"max_open_conns"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		TokenTransport string   `json:"token_transport"`
		CookieSecure   bool     `json:"cookie_secure"`
		AllowedOrigins []string `json:"allowed_origins"`
	} `json:"server,omitempty"`

	Adapter struct {
		SMTP SMTP `json:"smtp"`
		S3   struct {
			Region          string `json:"region"`
			EndpointURL     string `json:"endpoint_url"`
			AccessKeyID     string `json:"access_key_id"`
			SecretAccessKey string `json:"secret_access_key"`
			Bucket          string `json:"bucket"`
			PublicBaseURL   string `json:"public_base_url"`
		} `json:"s3"`
	} `json:"adapter,omitempty"`

	Workers struct {
		MailQueueSize int `json:"mail_queue_size"`
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
			TokenSignKey:      jsonCfg.App.TokenSignKey,
			TokenIssuer:       jsonCfg.App.TokenIssuer,
			TokenDuration:     time.Duration(jsonCfg.App.TokenDuration),
			TokenVersionCheck: jsonCfg.App.TokenVersionCheck,
			PasswordCost:      jsonCfg.App.PasswordCost,
			OTPBytes:          jsonCfg.App.OTPBytes,
			PublicURL:         jsonCfg.App.PublicURL,
			AdminEmail:        jsonCfg.App.AdminEmail,
			LogLevel:          jsonCfg.App.LogLevel,
			Version:           jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN:          jsonCfg.Storage.DB.DSN,
				MaxOpenConns: jsonCfg.Storage.DB.MaxOpenConns,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			TokenTransport: jsonCfg.Server.TokenTransport,
			CookieSecure:   jsonCfg.Server.CookieSecure,
			AllowedOrigins: jsonCfg.Server.AllowedOrigins,
		},
		Adapter: Adapter{
			SMTP: jsonCfg.Adapter.SMTP,
			S3: S3{
				Region:          jsonCfg.Adapter.S3.Region,
				EndpointURL:     jsonCfg.Adapter.S3.EndpointURL,
				AccessKeyID:     jsonCfg.Adapter.S3.AccessKeyID,
				SecretAccessKey: jsonCfg.Adapter.S3.SecretAccessKey,
				Bucket:          jsonCfg.Adapter.S3.Bucket,
				PublicBaseURL:   jsonCfg.Adapter.S3.PublicBaseURL,
			},
		},
		Workers: Workers{
			MailQueueSize: jsonCfg.Workers.MailQueueSize,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
