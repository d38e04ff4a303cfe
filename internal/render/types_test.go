package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderErrorTemporary(t *testing.T) {
	assert.True(t, (&ProviderError{StatusCode: 429}).Temporary())
	assert.True(t, (&ProviderError{StatusCode: 500}).Temporary())
	assert.True(t, (&ProviderError{StatusCode: 503}).Temporary())
	assert.True(t, (&ProviderError{Err: errors.New("connection reset")}).Temporary())

	assert.False(t, (&ProviderError{StatusCode: 400}).Temporary())
	assert.False(t, (&ProviderError{StatusCode: 401}).Temporary())
	assert.False(t, (&ProviderError{StatusCode: 0}).Temporary(), "no status and no error is not retryable")
}

func TestImageSizeMapping(t *testing.T) {
	assert.Equal(t, "1792x1024", imageSize(1920, 1080))
	assert.Equal(t, "1024x1792", imageSize(768, 1344))
	assert.Equal(t, "1024x1024", imageSize(0, 0))

	assert.Equal(t, "16:9", aspectRatio(1920, 1080))
	assert.Equal(t, "9:16", aspectRatio(768, 1344))
	assert.Equal(t, "1:1", aspectRatio(1024, 1024))
}
