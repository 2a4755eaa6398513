package vehicle

import (
	"path"
	"strings"
)

// Vehicle is a full inventory record as written to the dataset JSON.
type Vehicle struct {
	VIN            string  `json:"vin"`
	StockNumber    string  `json:"stockNumber"`
	Brand          string  `json:"brand"`
	Model          string  `json:"model"`
	Year           int     `json:"year"`
	Trim           string  `json:"trim"`
	Type           string  `json:"type"`
	Color          string  `json:"color"`
	Engine         string  `json:"engine"`
	Horsepower     int     `json:"horsepower"`
	MPG            string  `json:"mpg"`
	Seating        int     `json:"seating"`
	Drivetrain     string  `json:"drivetrain"`
	MSRP           int     `json:"msrp"`
	Invoice        int     `json:"invoice"`
	TargetPrice    int     `json:"targetPrice"`
	MinimumPrice   int     `json:"minimumPrice"`
	Incentives     int     `json:"incentives"`
	DaysOnLot      int     `json:"daysOnLot"`
	InventoryDepth int     `json:"inventoryDepth"`
	MarketPosition float64 `json:"marketPosition"`
	DealScore      int     `json:"dealScore"`
	Flexibility    string  `json:"flexibility"`
	ImageURL       string  `json:"imageUrl"`
	Thumbnail      *string `json:"thumbnail,omitempty"`
	Status         string  `json:"status"`
}

const StatusAvailable = "available"

// ImageSearch is one entry of the photo sourcing worklist.
type ImageSearch struct {
	Query   string `json:"query"`
	Vehicle string `json:"vehicle"`
	SaveAs  string `json:"save_as"`
}

// ImageBasename returns the last path element of the image URL, or "" when
// the record has no image.
func (v Vehicle) ImageBasename() string {
	if v.ImageURL == "" {
		return ""
	}
	return path.Base(v.ImageURL)
}

// BrandDir is the directory name used for a brand on disk: lower case, no spaces.
func BrandDir(brand string) string {
	if brand == "" {
		brand = "unknown"
	}
	return strings.ReplaceAll(strings.ToLower(brand), " ", "")
}
