package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/best-deal/inventory/b2util"
	"github.com/best-deal/inventory/cache"
	"github.com/best-deal/inventory/config"
	"github.com/best-deal/inventory/dataset"
	"github.com/best-deal/inventory/imageproc"
	pb "github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

type options struct {
	configPath  string
	source      string
	vehicles    string
	outJSON     string
	public      string
	detailWidth int
	thumbWidth  int
	upload      bool
	b2Prefix    string
	quiet       bool
}

func main() {
	if err := newCommand(os.Stdout).Execute(); err != nil {
		log.Fatalf("process_images: %v", err)
	}
}

func newCommand(stdout io.Writer) *cobra.Command {
	defaults := config.Defaults()
	opts := &options{}
	var settings config.Settings

	cmd := &cobra.Command{
		Use:   "process_images",
		Short: "Produce detail and thumbnail WebP derivatives for every vehicle",
		Long: `Reads the full dataset, looks for each vehicle's source photo under
{source}/{brand}/{basename} then {source}/{basename}, and writes
{public}/{brand}/{VIN}-detail.webp and {VIN}-thumb.webp. Vehicles without a
usable photo are reported at the end.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			settings, err = config.Load(opts.configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("source") {
				opts.source = settings.Images.Source
			}
			if !flags.Changed("vehicles") {
				opts.vehicles = settings.Dataset
			}
			if !flags.Changed("out-json") {
				opts.outJSON = settings.Lean
			}
			if !flags.Changed("public") {
				opts.public = settings.Images.Public
			}
			if !flags.Changed("detail-width") {
				opts.detailWidth = settings.Images.DetailWidth
			}
			if !flags.Changed("thumb-width") {
				opts.thumbWidth = settings.Images.ThumbWidth
			}
			if opts.detailWidth <= 0 || opts.thumbWidth <= 0 {
				return fmt.Errorf("widths must be positive")
			}
			return run(cmd.Context(), opts, settings.Images, stdout)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", config.DefaultConfigFile, "YAML settings file")
	cmd.Flags().StringVar(&opts.source, "source", defaults.Images.Source, "Source image directory")
	cmd.Flags().StringVar(&opts.vehicles, "vehicles", defaults.Dataset, "Full dataset to read")
	cmd.Flags().StringVar(&opts.outJSON, "out-json", defaults.Lean, "Output lean dataset with image paths")
	cmd.Flags().StringVar(&opts.public, "public", defaults.Images.Public, "Output directory for derivatives")
	cmd.Flags().IntVar(&opts.detailWidth, "detail-width", defaults.Images.DetailWidth, "Maximum detail image width")
	cmd.Flags().IntVar(&opts.thumbWidth, "thumb-width", defaults.Images.ThumbWidth, "Maximum thumbnail width")
	cmd.Flags().BoolVar(&opts.upload, "upload", false, "Also upload derivatives to Backblaze B2")
	cmd.Flags().StringVar(&opts.b2Prefix, "b2-prefix", "images", "Object name prefix in the B2 bucket")
	cmd.Flags().BoolVar(&opts.quiet, "quiet", false, "Disable the progress bar")

	return cmd
}

func run(ctx context.Context, opts *options, img config.ImageSettings, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	vehicles, err := dataset.ReadVehicles(opts.vehicles)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.public, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.public, err)
	}

	derivatives, err := cache.New[[]byte]("Derivative Cache", cache.DefaultMaxCost, func(v []byte) int64 {
		return int64(len(v))
	})
	if err != nil {
		return fmt.Errorf("failed to initialize derivative cache: %w", err)
	}
	defer derivatives.Close()

	p := &imageproc.Processor{
		SourceRoot: opts.source,
		PublicRoot: opts.public,
		URLPrefix:  img.URLPrefix,
		Detail:     imageproc.Size{Suffix: "detail", MaxWidth: opts.detailWidth, Quality: img.DetailQuality},
		Thumb:      imageproc.Size{Suffix: "thumb", MaxWidth: opts.thumbWidth, Quality: img.ThumbQuality},
		Cache:      derivatives,
	}

	if opts.upload {
		uploader, err := b2util.NewUploader(opts.b2Prefix)
		if err != nil {
			return fmt.Errorf("upload requested: %w", err)
		}
		p.Uploader = uploader
	}

	if !opts.quiet {
		bar := pb.NewOptions(len(vehicles),
			pb.OptionSetDescription("[images]"),
			pb.OptionSetWriter(os.Stderr),
			pb.OptionSetWidth(20),
			pb.OptionShowCount(),
			pb.OptionThrottle(65*time.Millisecond),
			pb.OptionOnCompletion(func() { fmt.Fprint(os.Stderr, "\n") }),
		)
		defer bar.Finish()
		p.Tick = func() { bar.Add(1) }
	}

	res := p.Process(ctx, vehicles)

	if err := dataset.WriteJSON(opts.outJSON, res.Vehicles); err != nil {
		return err
	}

	stats := derivatives.Stats()
	log.Printf("[images] %s: %d hits, %d misses", stats.Name, stats.Hits, stats.Misses)
	if opts.upload {
		fmt.Fprintf(stdout, "Uploaded %d derivatives to B2, %d failed.\n", res.Uploaded, res.UploadFailed)
	}

	fmt.Fprintf(stdout, "Processed %d images. %d vehicles missing images.\n", res.Processed, len(res.Missing))
	if len(res.Missing) > 0 {
		fmt.Fprintf(stdout, "Missing VINs (place matching source images under %s/{brand}/basename):\n", opts.source)
		for _, vin := range res.Missing {
			fmt.Fprintf(stdout, " - %s\n", vin)
		}
	}
	return nil
}
