// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Smart Exam Hub Authors

package config

import (
	"fmt"
	"time"
)

// Defaults applied by [StructuredConfig.applyDefaults] to fields left zero by
// every configuration source.
const (
	DefaultHTTPAddress    = ":3001"
	DefaultRequestTimeout = 30 * time.Second
	DefaultTokenIssuer    = "exam-hub"
	DefaultTokenDuration  = 72 * time.Hour
	DefaultPasswordCost   = 10
	DefaultOTPBytes       = 7
	DefaultMaxOpenConns   = 10
	DefaultMailQueueSize  = 100
	DefaultVersion        = "N/A"
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.TokenTransport == "" {
		cfg.Server.TokenTransport = TokenTransportCookie
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.PasswordCost == 0 {
		cfg.App.PasswordCost = DefaultPasswordCost
	}
	if cfg.App.OTPBytes == 0 {
		cfg.App.OTPBytes = DefaultOTPBytes
	}
	if cfg.App.Version == "" {
		cfg.App.Version = DefaultVersion
	}
	if cfg.Storage.DB.MaxOpenConns == 0 {
		cfg.Storage.DB.MaxOpenConns = DefaultMaxOpenConns
	}
	if cfg.Workers.MailQueueSize == 0 {
		cfg.Workers.MailQueueSize = DefaultMailQueueSize
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants the server relies on at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || cfg.Storage.DB.MaxOpenConns < 1 {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration < 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.App.OTPBytes < 4 {
		return fmt.Errorf("%w: otp must be at least 4 bytes", ErrInvalidAppConfigs)
	}

	// bcrypt accepts 4..31; anything else is rejected at hash time.
	if cfg.App.PasswordCost < 4 || cfg.App.PasswordCost > 31 {
		return fmt.Errorf("%w: password cost out of range", ErrInvalidAppConfigs)
	}

	switch cfg.Server.TokenTransport {
	case TokenTransportCookie, TokenTransportHeader:
	default:
		return fmt.Errorf("%w: unknown token transport %q", ErrInvalidServerConfigs, cfg.Server.TokenTransport)
	}

	if cfg.Server.RequestTimeout < 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.MailQueueSize < 1 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
