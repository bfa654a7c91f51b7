package qrcode

import "errors"

var (
	ErrEmptyContent           = errors.New("qr code content cannot be empty")
	ErrInvalidBaseURL         = errors.New("invalid survey base URL")
	ErrInvalidSurveyID        = errors.New("invalid survey id")
	ErrInvalidSize            = errors.New("qr code size out of range")
	ErrFailedToGenerateQRCode = errors.New("failed to generate QR code")
)
