package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/best-deal/inventory/config"
	"github.com/best-deal/inventory/dataset"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	vehicles   string
	outLean    string
	outMap     string
}

func main() {
	if err := newCommand(os.Stdout).Execute(); err != nil {
		log.Fatalf("gen_lean: %v", err)
	}
}

func newCommand(stdout io.Writer) *cobra.Command {
	defaults := config.Defaults()
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "gen_lean",
		Short:         "Write the lean dataset and image basename map without touching images",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(opts.configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("vehicles") {
				opts.vehicles = settings.Dataset
			}
			if !cmd.Flags().Changed("out-lean") {
				opts.outLean = settings.Lean
			}
			if !cmd.Flags().Changed("out-map") {
				opts.outMap = settings.ImageMap
			}
			return run(opts, stdout)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", config.DefaultConfigFile, "YAML settings file")
	cmd.Flags().StringVar(&opts.vehicles, "vehicles", defaults.Dataset, "Full dataset to read")
	cmd.Flags().StringVar(&opts.outLean, "out-lean", defaults.Lean, "Output lean dataset")
	cmd.Flags().StringVar(&opts.outMap, "out-map", defaults.ImageMap, "Output image basename map")

	return cmd
}

func run(opts *options, stdout io.Writer) error {
	vehicles, err := dataset.ReadVehicles(opts.vehicles)
	if err != nil {
		return err
	}

	lean, images := dataset.Project(vehicles)

	if err := dataset.WriteJSON(opts.outLean, lean); err != nil {
		return err
	}
	if err := dataset.WriteJSON(opts.outMap, images); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Wrote %d vehicles to %s\n", len(lean), filepath.Base(opts.outLean))
	fmt.Fprintf(stdout, "Found %d unique image basenames, wrote %s\n", images.Len(), filepath.Base(opts.outMap))
	return nil
}
