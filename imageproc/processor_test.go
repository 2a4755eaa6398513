package imageproc

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/best-deal/inventory/cache"
	"github.com/best-deal/inventory/vehicle"
	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	uploaded map[string]int
	fail     bool
}

func (f *fakeUploader) Upload(ctx context.Context, name string, data []byte) error {
	if f.fail {
		return errors.New("bucket unavailable")
	}
	if f.uploaded == nil {
		f.uploaded = make(map[string]int)
	}
	f.uploaded[name] = len(data)
	return nil
}

func newProcessor(t *testing.T) *Processor {
	t.Helper()
	return &Processor{
		SourceRoot: filepath.Join(t.TempDir(), "raw"),
		PublicRoot: filepath.Join(t.TempDir(), "public"),
		URLPrefix:  "/images",
		Detail:     Size{Suffix: "detail", MaxWidth: 1200, Quality: 85},
		Thumb:      Size{Suffix: "thumb", MaxWidth: 320, Quality: 80},
	}
}

func decodedSize(t *testing.T, path string) (int, int) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg, err := webp.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func TestProcess(t *testing.T) {
	p := newProcessor(t)
	writePNG(t, filepath.Join(p.SourceRoot, "chevrolet", "tahoe-white.jpg"), 1600, 900)
	writePNG(t, filepath.Join(p.SourceRoot, "yukon-white.jpg"), 300, 200)
	require.NoError(t, os.WriteFile(filepath.Join(p.SourceRoot, "broken-white.jpg"), []byte("garbage"), 0644))

	vehicles := []vehicle.Vehicle{
		{VIN: "VIN1", Brand: "Chevrolet", Model: "Tahoe", Color: "Black", ImageURL: "/images/chevrolet/tahoe-white.jpg"},
		{VIN: "VIN2", Brand: "Buick", Model: "Enclave", ImageURL: "/images/buick/enclave-white.jpg"},
		{VIN: "VIN3", Brand: "Gmc", Model: "Yukon", ImageURL: "/images/gmc/yukon-white.jpg"},
		{VIN: "VIN4", Brand: "Gmc", Model: "Broken", ImageURL: "/images/gmc/broken-white.jpg"},
		{VIN: "VIN5", Brand: "Gmc", Model: "None"},
	}

	ticks := 0
	p.Tick = func() { ticks++ }

	res := p.Process(context.Background(), vehicles)

	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, []string{"VIN2", "VIN4", "VIN5"}, res.Missing)
	assert.Equal(t, len(vehicles), ticks)
	require.Len(t, res.Vehicles, len(vehicles))

	tahoe := res.Vehicles[0]
	require.NotNil(t, tahoe.Image)
	require.NotNil(t, tahoe.Thumbnail)
	assert.Equal(t, "/images/chevrolet/VIN1-detail.webp", *tahoe.Image)
	assert.Equal(t, "/images/chevrolet/VIN1-thumb.webp", *tahoe.Thumbnail)
	assert.Equal(t, "Black", tahoe.Color)

	w, h := decodedSize(t, filepath.Join(p.PublicRoot, "chevrolet", "VIN1-detail.webp"))
	assert.Equal(t, 1200, w)
	assert.InDelta(t, 675, h, 1)
	w, h = decodedSize(t, filepath.Join(p.PublicRoot, "chevrolet", "VIN1-thumb.webp"))
	assert.Equal(t, 320, w)
	assert.InDelta(t, 180, h, 1)

	// narrower than both targets: no geometry change
	w, h = decodedSize(t, filepath.Join(p.PublicRoot, "gmc", "VIN3-detail.webp"))
	assert.Equal(t, 300, w)
	assert.Equal(t, 200, h)
	w, h = decodedSize(t, filepath.Join(p.PublicRoot, "gmc", "VIN3-thumb.webp"))
	assert.Equal(t, 300, w)
	assert.Equal(t, 200, h)

	for _, i := range []int{1, 3, 4} {
		assert.Nil(t, res.Vehicles[i].Image, res.Vehicles[i].VIN)
		assert.Nil(t, res.Vehicles[i].Thumbnail, res.Vehicles[i].VIN)
	}
	assert.NoFileExists(t, filepath.Join(p.PublicRoot, "buick", "VIN2-detail.webp"))
}

func TestProcess_SharedSourceUsesCache(t *testing.T) {
	p := newProcessor(t)
	writePNG(t, filepath.Join(p.SourceRoot, "chevrolet", "tahoe-white.jpg"), 800, 600)

	c, err := cache.New[[]byte]("Derivative Cache", cache.DefaultMaxCost, func(v []byte) int64 { return int64(len(v)) })
	require.NoError(t, err)
	defer c.Close()
	p.Cache = c

	vehicles := []vehicle.Vehicle{
		{VIN: "VIN1", Brand: "Chevrolet", ImageURL: "/images/chevrolet/tahoe-white.jpg"},
		{VIN: "VIN2", Brand: "Chevrolet", ImageURL: "/images/chevrolet/tahoe-white.jpg"},
	}

	res := p.Process(context.Background(), vehicles)
	assert.Equal(t, 2, res.Processed)
	assert.Empty(t, res.Missing)

	stats := c.Stats()
	assert.Equal(t, uint64(2), stats.Hits)
	assert.Equal(t, uint64(2), stats.Misses)

	a, err := os.ReadFile(filepath.Join(p.PublicRoot, "chevrolet", "VIN1-thumb.webp"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(p.PublicRoot, "chevrolet", "VIN2-thumb.webp"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestProcess_Upload(t *testing.T) {
	p := newProcessor(t)
	writePNG(t, filepath.Join(p.SourceRoot, "tahoe-white.jpg"), 400, 300)
	up := &fakeUploader{}
	p.Uploader = up

	res := p.Process(context.Background(), []vehicle.Vehicle{
		{VIN: "VIN1", Brand: "Chevrolet", ImageURL: "/images/chevrolet/tahoe-white.jpg"},
	})

	assert.Equal(t, 2, res.Uploaded)
	assert.Equal(t, 0, res.UploadFailed)
	assert.Contains(t, up.uploaded, "chevrolet/VIN1-detail.webp")
	assert.Contains(t, up.uploaded, "chevrolet/VIN1-thumb.webp")
}

func TestProcess_UploadFailureIsNotMissing(t *testing.T) {
	p := newProcessor(t)
	writePNG(t, filepath.Join(p.SourceRoot, "tahoe-white.jpg"), 400, 300)
	p.Uploader = &fakeUploader{fail: true}

	res := p.Process(context.Background(), []vehicle.Vehicle{
		{VIN: "VIN1", Brand: "Chevrolet", ImageURL: "/images/chevrolet/tahoe-white.jpg"},
	})

	assert.Equal(t, 1, res.Processed)
	assert.Empty(t, res.Missing)
	assert.Equal(t, 2, res.UploadFailed)
	assert.NotNil(t, res.Vehicles[0].Image)
}

func TestDerivativeName(t *testing.T) {
	assert.Equal(t, "1G1YYR123-detail.webp", DerivativeName("1G1YYR123", "detail"))
}
