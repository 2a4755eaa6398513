package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/best-deal/inventory/config"
	"github.com/best-deal/inventory/dataset"
	"github.com/best-deal/inventory/db"
	"github.com/best-deal/inventory/inventory"
	"github.com/best-deal/inventory/vehicle"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	vehicles   string
	dbFile     string
}

func main() {
	if err := newCommand(os.Stdout).Execute(); err != nil {
		log.Fatalf("build_inventory_db: %v", err)
	}
}

func newCommand(stdout io.Writer) *cobra.Command {
	defaults := config.Defaults()
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "build_inventory_db",
		Short:         "Rebuild the SQLite inventory snapshot from the full dataset",
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
			if !cmd.Flags().Changed("db") {
				opts.dbFile = settings.InventoryDB
			}
			return run(opts, stdout)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", config.DefaultConfigFile, "YAML settings file")
	cmd.Flags().StringVar(&opts.vehicles, "vehicles", defaults.Dataset, "Full dataset to read")
	cmd.Flags().StringVar(&opts.dbFile, "db", defaults.InventoryDB, "SQLite database to (re)create")

	return cmd
}

func run(opts *options, stdout io.Writer) error {
	vehicles, err := dataset.ReadVehicles(opts.vehicles)
	if err != nil {
		return err
	}

	database, err := db.Recreate(opts.dbFile)
	if err != nil {
		return err
	}
	defer database.Close()

	store := inventory.New(database)
	if err := store.CreateSchema(); err != nil {
		return err
	}

	n, err := store.Load(vehicles)
	if err != nil {
		return err
	}

	counts, err := store.CountByFlexibility()
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Loaded %d vehicles into %s\n", n, opts.dbFile)
	fmt.Fprintf(stdout, "Flexibility: High=%d, Medium=%d, Low=%d\n",
		counts[vehicle.FlexibilityHigh], counts[vehicle.FlexibilityMedium], counts[vehicle.FlexibilityLow])
	return nil
}
