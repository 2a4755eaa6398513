package inventory

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/best-deal/inventory/vehicle"
)

// ErrNotFound is returned when no vehicle has the requested VIN.
var ErrNotFound = errors.New("vehicle not found")

const schema = `
CREATE TABLE IF NOT EXISTS Vehicle (
	vin             TEXT PRIMARY KEY,
	stock_number    TEXT NOT NULL,
	brand           TEXT NOT NULL,
	model           TEXT NOT NULL,
	year            INTEGER NOT NULL,
	trim            TEXT,
	body_type       TEXT,
	color           TEXT,
	engine          TEXT,
	horsepower      INTEGER,
	mpg             TEXT,
	seating         INTEGER,
	drivetrain      TEXT,
	msrp            INTEGER NOT NULL,
	invoice         INTEGER NOT NULL,
	target_price    INTEGER NOT NULL,
	minimum_price   INTEGER NOT NULL,
	incentives      INTEGER NOT NULL,
	days_on_lot     INTEGER NOT NULL,
	inventory_depth INTEGER NOT NULL,
	market_position REAL NOT NULL,
	deal_score      INTEGER NOT NULL,
	flexibility     TEXT NOT NULL,
	image_url       TEXT,
	status          TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_vehicle_flexibility ON Vehicle(flexibility);
`

const insertVehicle = `INSERT INTO Vehicle (
	vin, stock_number, brand, model, year, trim, body_type, color, engine,
	horsepower, mpg, seating, drivetrain, msrp, invoice, target_price,
	minimum_price, incentives, days_on_lot, inventory_depth, market_position,
	deal_score, flexibility, image_url, status
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectVehicle = `SELECT
	vin, stock_number, brand, model, year, trim, body_type, color, engine,
	horsepower, mpg, seating, drivetrain, msrp, invoice, target_price,
	minimum_price, incentives, days_on_lot, inventory_depth, market_position,
	deal_score, flexibility, image_url, status
FROM Vehicle WHERE vin = ?`

// Store is the SQLite inventory snapshot.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateSchema creates the Vehicle table if it does not exist.
func (s *Store) CreateSchema() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Load inserts all vehicles in a single transaction. A duplicate VIN fails
// the whole load.
func (s *Store) Load(vehicles []vehicle.Vehicle) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(insertVehicle)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range vehicles {
		_, err := stmt.Exec(
			v.VIN, v.StockNumber, v.Brand, v.Model, v.Year, v.Trim, v.Type, v.Color, v.Engine,
			v.Horsepower, v.MPG, v.Seating, v.Drivetrain, v.MSRP, v.Invoice, v.TargetPrice,
			v.MinimumPrice, v.Incentives, v.DaysOnLot, v.InventoryDepth, v.MarketPosition,
			v.DealScore, v.Flexibility, v.ImageURL, v.Status,
		)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to insert vehicle %s: %w", v.VIN, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	log.Printf("[inventory] Loaded %d vehicles", len(vehicles))
	return len(vehicles), nil
}

// GetByVIN returns the vehicle with the given VIN or ErrNotFound.
func (s *Store) GetByVIN(vin string) (vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	var trim, bodyType, color, engine, mpg, drivetrain, imageURL sql.NullString
	var horsepower, seating sql.NullInt64

	err := s.db.QueryRow(selectVehicle, vin).Scan(
		&v.VIN, &v.StockNumber, &v.Brand, &v.Model, &v.Year, &trim, &bodyType, &color, &engine,
		&horsepower, &mpg, &seating, &drivetrain, &v.MSRP, &v.Invoice, &v.TargetPrice,
		&v.MinimumPrice, &v.Incentives, &v.DaysOnLot, &v.InventoryDepth, &v.MarketPosition,
		&v.DealScore, &v.Flexibility, &imageURL, &v.Status,
	)
	if err == sql.ErrNoRows {
		return vehicle.Vehicle{}, ErrNotFound
	}
	if err != nil {
		return vehicle.Vehicle{}, fmt.Errorf("failed to get vehicle %s: %w", vin, err)
	}

	v.Trim = trim.String
	v.Type = bodyType.String
	v.Color = color.String
	v.Engine = engine.String
	v.Horsepower = int(horsepower.Int64)
	v.MPG = mpg.String
	v.Seating = int(seating.Int64)
	v.Drivetrain = drivetrain.String
	v.ImageURL = imageURL.String
	return v, nil
}

// CountByFlexibility returns the number of vehicles in each flexibility tier.
func (s *Store) CountByFlexibility() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT flexibility, COUNT(*) FROM Vehicle GROUP BY flexibility ORDER BY flexibility`)
	if err != nil {
		return nil, fmt.Errorf("failed to count vehicles: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var tier string
		var n int
		if err := rows.Scan(&tier, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[tier] = n
	}
	return counts, rows.Err()
}
