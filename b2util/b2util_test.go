package b2util

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/best-deal/inventory/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/kothar/go-backblaze.v0"
)

type fakeBucket struct {
	failures int // number of leading calls that fail
	calls    int
	names    []string
	types    []string
	bodies   [][]byte
}

func (f *fakeBucket) UploadTypedFile(path, contentType string, meta map[string]string, file io.Reader) (*backblaze.File, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("503 service unavailable")
	}
	body, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	f.names = append(f.names, path)
	f.types = append(f.types, contentType)
	f.bodies = append(f.bodies, body)
	return &backblaze.File{}, nil
}

func TestUpload(t *testing.T) {
	b := &fakeBucket{}
	u := newUploader(b, "inventory", 0)

	err := u.Upload(context.Background(), "gmc/VIN1-thumb.webp", []byte("webp"))
	require.NoError(t, err)

	assert.Equal(t, []string{"inventory/gmc/VIN1-thumb.webp"}, b.names)
	assert.Equal(t, []string{"image/webp"}, b.types)
	assert.Equal(t, []byte("webp"), b.bodies[0])
}

func TestUpload_NoPrefix(t *testing.T) {
	b := &fakeBucket{}
	u := newUploader(b, "", 0)

	require.NoError(t, u.Upload(context.Background(), "gmc/VIN1-detail.webp", []byte("x")))
	assert.Equal(t, []string{"gmc/VIN1-detail.webp"}, b.names)
}

func TestUpload_RetriesThenSucceeds(t *testing.T) {
	b := &fakeBucket{failures: 2}
	u := newUploader(b, "", 0)

	require.NoError(t, u.Upload(context.Background(), "a.webp", []byte("x")))
	assert.Equal(t, 3, b.calls)
	// the body is re-read on every attempt
	assert.Equal(t, []byte("x"), b.bodies[0])
}

func TestUpload_GivesUp(t *testing.T) {
	b := &fakeBucket{failures: 5}
	u := newUploader(b, "", 0)

	err := u.Upload(context.Background(), "a.webp", []byte("x"))
	assert.Error(t, err)
	assert.Equal(t, maxAttempts, b.calls)
}

func TestUpload_ContextCanceled(t *testing.T) {
	b := &fakeBucket{failures: 5}
	u := newUploader(b, "", defaultBackoff)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := u.Upload(ctx, "a.webp", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, b.calls)
}

func TestNewUploader_MissingCredentials(t *testing.T) {
	if config.B2Configured() {
		t.Skip("B2 credentials present in environment")
	}
	_, err := NewUploader("")
	assert.Error(t, err)
}
