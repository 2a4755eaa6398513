package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/best-deal/inventory/config"
	"github.com/best-deal/inventory/dataset"
	"github.com/best-deal/inventory/vehicle"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	out        string
	searches   string
	seed       int64
}

func main() {
	if err := newCommand(os.Stdout).Execute(); err != nil {
		log.Fatalf("gen_vehicles: %v", err)
	}
}

func newCommand(stdout io.Writer) *cobra.Command {
	defaults := config.Defaults()
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "gen_vehicles",
		Short:         "Generate the mock vehicle dataset and image search worklist",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(opts.configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("out") {
				opts.out = settings.Dataset
			}
			if !cmd.Flags().Changed("searches") {
				opts.searches = settings.ImageSearch
			}
			return run(opts, stdout)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", config.DefaultConfigFile, "YAML settings file")
	cmd.Flags().StringVar(&opts.out, "out", defaults.Dataset, "Output dataset file")
	cmd.Flags().StringVar(&opts.searches, "searches", defaults.ImageSearch, "Output image search worklist")
	cmd.Flags().Int64Var(&opts.seed, "seed", time.Now().UnixNano(), "Random seed")

	return cmd
}

func run(opts *options, stdout io.Writer) error {
	vehicles := vehicle.NewGenerator(opts.seed).Generate()

	if err := dataset.WriteJSON(opts.out, vehicles); err != nil {
		return err
	}
	if err := dataset.WriteJSON(opts.searches, vehicle.ImageSearches(vehicles)); err != nil {
		return err
	}

	s := vehicle.Summarize(vehicles)
	fmt.Fprintf(stdout, "✓ Generated %d vehicles\n", len(vehicles))
	fmt.Fprintf(stdout, "✓ Brands: Chevrolet=%d, GMC=%d, Cadillac=%d, Buick=%d\n",
		s.Brands["Chevrolet"], s.Brands["Gmc"], s.Brands["Cadillac"], s.Brands["Buick"])
	fmt.Fprintf(stdout, "✓ Flexibility: High=%d, Medium=%d, Low=%d\n",
		s.Flexibility[vehicle.FlexibilityHigh], s.Flexibility[vehicle.FlexibilityMedium], s.Flexibility[vehicle.FlexibilityLow])
	fmt.Fprintf(stdout, "✓ Saved %s and %s\n", opts.out, opts.searches)
	return nil
}
