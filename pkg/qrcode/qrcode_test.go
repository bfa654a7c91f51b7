package qrcode_test

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surveyguy/surveykit/pkg/qrcode"
)

func TestSurveyLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		base    string
		id      string
		want    string
		wantErr error
	}{
		{"plain", "https://surveys.example.com", "abc123", "https://surveys.example.com/s/abc123", nil},
		{"trailing slash", "https://surveys.example.com/", "abc123", "https://surveys.example.com/s/abc123", nil},
		{"base path", "http://localhost:8080/app", "x", "http://localhost:8080/app/s/x", nil},
		{"empty id", "https://surveys.example.com", " ", "", qrcode.ErrInvalidSurveyID},
		{"id with slash", "https://surveys.example.com", "a/b", "", qrcode.ErrInvalidSurveyID},
		{"no scheme", "surveys.example.com", "abc", "", qrcode.ErrInvalidBaseURL},
		{"bad scheme", "ftp://surveys.example.com", "abc", "", qrcode.ErrInvalidBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := qrcode.SurveyLink(tt.base, tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("png of requested size", func(t *testing.T) {
		t.Parallel()
		data, err := qrcode.Generate("https://surveys.example.com/s/abc", 128)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 128, img.Bounds().Dx())
		assert.Equal(t, 128, img.Bounds().Dy())
	})

	t.Run("default size", func(t *testing.T) {
		t.Parallel()
		data, err := qrcode.Generate("hello", 0)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, qrcode.DefaultSize, img.Bounds().Dx())
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		_, err := qrcode.Generate(" \t", 128)
		assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
	})

	t.Run("size out of range", func(t *testing.T) {
		t.Parallel()
		_, err := qrcode.Generate("hello", 10)
		assert.ErrorIs(t, err, qrcode.ErrInvalidSize)
		_, err = qrcode.Generate("hello", 5000)
		assert.ErrorIs(t, err, qrcode.ErrInvalidSize)
	})

	t.Run("content too long", func(t *testing.T) {
		t.Parallel()
		_, err := qrcode.Generate(strings.Repeat("x", 8000), 256)
		assert.ErrorIs(t, err, qrcode.ErrFailedToGenerateQRCode)
	})
}

func TestSurveyPNG(t *testing.T) {
	t.Parallel()

	data, err := qrcode.SurveyPNG("https://surveys.example.com", "abc", 0)
	require.NoError(t, err)

	uri := qrcode.DataURI(data)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, data, decoded)

	_, err = qrcode.SurveyPNG("nope", "abc", 0)
	assert.ErrorIs(t, err, qrcode.ErrInvalidBaseURL)
}
