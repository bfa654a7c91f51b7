package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultSize = 256
	MinSize     = 64
	MaxSize     = 1024
)

// SurveyLink builds the public answer link of a survey: {baseURL}/s/{surveyID}.
func SurveyLink(baseURL, surveyID string) (string, error) {
	surveyID = strings.TrimSpace(surveyID)
	if surveyID == "" || strings.ContainsAny(surveyID, "/?#") {
		return "", ErrInvalidSurveyID
	}

	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", errors.Join(ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", errors.Join(ErrInvalidBaseURL, fmt.Errorf("%q", baseURL))
	}
	return u.JoinPath("s", surveyID).String(), nil
}

// Generate encodes content as a square PNG of size pixels with medium error
// recovery. A zero size uses DefaultSize.
func Generate(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size == 0 {
		size = DefaultSize
	}
	if size < MinSize || size > MaxSize {
		return nil, errors.Join(ErrInvalidSize, fmt.Errorf("%d not in [%d, %d]", size, MinSize, MaxSize))
	}

	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	return png, nil
}

// SurveyPNG generates the QR code of a survey's answer link.
func SurveyPNG(baseURL, surveyID string, size int) ([]byte, error) {
	link, err := SurveyLink(baseURL, surveyID)
	if err != nil {
		return nil, err
	}
	return Generate(link, size)
}

// DataURI returns the PNG as a data URI usable in an <img src>.
func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
