// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Smart Exam Hub Authors

// Package adapter holds the outbound integrations of the exam hub server:
// the SMTP mail relay and the S3-compatible object store for profile
// images.
//
// Both are opaque collaborators to the service layer; errors they return
// are wrapped with the sentinels in errors.go so callers can use
// [errors.Is] without knowing the transport.
package adapter

import (
	"context"
	"io"

	"github.com/Z3ron7/server/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// Mailer delivers a single email.
type Mailer interface {
	Send(ctx context.Context, msg models.MailMessage) error
}

// ImageStore keeps uploaded profile images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, filename string, body io.Reader, contentType string) (string, error)
}
