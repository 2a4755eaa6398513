package imageproc

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path"
	"path/filepath"

	"github.com/best-deal/inventory/cache"
	"github.com/best-deal/inventory/dataset"
	"github.com/best-deal/inventory/vehicle"
)

// Uploader publishes a written derivative under name (e.g. "gmc/VIN-thumb.webp").
type Uploader interface {
	Upload(ctx context.Context, name string, data []byte) error
}

// Size describes one derivative produced for every vehicle.
type Size struct {
	Suffix   string
	MaxWidth int
	Quality  float32
}

// Processor turns source photos into web derivatives for a dataset.
type Processor struct {
	SourceRoot string
	PublicRoot string
	URLPrefix  string
	Detail     Size
	Thumb      Size

	// Encoded derivatives keyed by source, width and quality. Optional.
	Cache *cache.Cache[[]byte]
	// Optional; derivatives are only written locally when nil.
	Uploader Uploader
	// Called once per vehicle after it has been handled. Optional.
	Tick func()
}

// Result is the outcome of a processing run.
type Result struct {
	Vehicles     []dataset.ProcessedVehicle
	Missing      []string // VINs in processing order
	Processed    int
	Uploaded     int
	UploadFailed int
}

// Process handles every vehicle in order. Per-vehicle failures are recorded in
// Result.Missing and never stop the run.
func (p *Processor) Process(ctx context.Context, vehicles []vehicle.Vehicle) Result {
	res := Result{Vehicles: make([]dataset.ProcessedVehicle, 0, len(vehicles))}

	for _, v := range vehicles {
		detail, thumb, err := p.processVehicle(ctx, v, &res)
		if err != nil {
			log.Printf("[images] %s: %v", v.VIN, err)
			res.Missing = append(res.Missing, v.VIN)
			detail, thumb = nil, nil
		} else {
			res.Processed++
		}
		res.Vehicles = append(res.Vehicles, dataset.Processed(v, detail, thumb))
		if p.Tick != nil {
			p.Tick()
		}
	}

	return res
}

func (p *Processor) processVehicle(ctx context.Context, v vehicle.Vehicle, res *Result) (*string, *string, error) {
	brandDir := vehicle.BrandDir(v.Brand)
	basename := v.ImageBasename()

	src, ok := Resolve(p.SourceRoot, brandDir, basename)
	if !ok {
		return nil, nil, fmt.Errorf("no source image for %q", basename)
	}

	outDir := filepath.Join(p.PublicRoot, brandDir)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	// decoded lazily, only when a derivative is not cached
	var img image.Image
	urls := make([]string, 0, 2)

	for _, sz := range []Size{p.Detail, p.Thumb} {
		data, err := p.render(src, &img, sz)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to process %s: %w", src, err)
		}

		name := DerivativeName(v.VIN, sz.Suffix)
		if err := os.WriteFile(filepath.Join(outDir, name), data, 0644); err != nil {
			return nil, nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
		urls = append(urls, path.Join(p.URLPrefix, brandDir, name))

		if p.Uploader != nil {
			key := path.Join(brandDir, name)
			if err := p.Uploader.Upload(ctx, key, data); err != nil {
				log.Printf("[b2] upload failed for %s: %v", key, err)
				res.UploadFailed++
			} else {
				res.Uploaded++
			}
		}
	}

	return &urls[0], &urls[1], nil
}

// render returns the encoded derivative of src for sz, decoding into *img on
// first use.
func (p *Processor) render(src string, img *image.Image, sz Size) ([]byte, error) {
	key := fmt.Sprintf("%s|%d|%g", src, sz.MaxWidth, sz.Quality)
	if p.Cache != nil {
		if data, found := p.Cache.Get(key); found {
			return data, nil
		}
	}

	if *img == nil {
		decoded, err := Load(src)
		if err != nil {
			return nil, err
		}
		*img = decoded
	}

	data, err := EncodeWebP(Resize(*img, sz.MaxWidth), sz.Quality)
	if err != nil {
		return nil, err
	}

	if p.Cache != nil {
		p.Cache.Set(key, data, 0)
		p.Cache.Wait()
	}
	return data, nil
}

// DerivativeName is the file name of a vehicle's derivative, e.g. VIN-thumb.webp.
func DerivativeName(vin, suffix string) string {
	return fmt.Sprintf("%s-%s.webp", vin, suffix)
}
