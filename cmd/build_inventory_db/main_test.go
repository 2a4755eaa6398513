package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/best-deal/inventory/dataset"
	"github.com/best-deal/inventory/db"
	"github.com/best-deal/inventory/inventory"
	"github.com/best-deal/inventory/vehicle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInventoryDB(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "vehicles_dataset.json")
	dbFile := filepath.Join(dir, "inventory.db")

	vehicles := vehicle.NewGenerator(5).Generate()
	require.NoError(t, dataset.WriteJSON(in, vehicles))

	// running twice rebuilds rather than colliding on VINs
	for i := 0; i < 2; i++ {
		var stdout bytes.Buffer
		cmd := newCommand(&stdout)
		cmd.SetArgs([]string{"--vehicles", in, "--db", dbFile})
		require.NoError(t, cmd.Execute())
		assert.Contains(t, stdout.String(), "Loaded")
	}

	database, err := db.Open(dbFile)
	require.NoError(t, err)
	defer database.Close()

	got, err := inventory.New(database).GetByVIN(vehicles[0].VIN)
	require.NoError(t, err)
	assert.Equal(t, vehicles[0], got)
}

func TestBuildInventoryDB_MissingDataset(t *testing.T) {
	dir := t.TempDir()
	cmd := newCommand(&bytes.Buffer{})
	cmd.SetArgs([]string{"--vehicles", filepath.Join(dir, "missing.json"), "--db", filepath.Join(dir, "x.db")})
	assert.ErrorIs(t, cmd.Execute(), dataset.ErrNotFound)
}
