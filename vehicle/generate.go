package vehicle

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	ModelYear  = 2024
	firstStock = 1000
)

// daysBand is a half-open [lo, hi) range of days on lot with a selection weight.
type daysBand struct {
	lo, hi int
	weight int
}

var daysOnLotDistribution = []daysBand{
	{5, 15, 10},
	{15, 30, 25},
	{30, 60, 35},
	{60, 90, 20},
	{90, 180, 10},
}

// Generator stamps random inventory units from the catalog.
type Generator struct {
	rng     *rand.Rand
	catalog []CatalogEntry
	title   cases.Caser
}

// NewGenerator returns a generator over Catalog seeded with seed.
func NewGenerator(seed int64) *Generator {
	return NewGeneratorWithCatalog(seed, Catalog)
}

func NewGeneratorWithCatalog(seed int64, catalog []CatalogEntry) *Generator {
	return &Generator{
		rng:     rand.New(rand.NewSource(seed)),
		catalog: catalog,
		title:   cases.Title(language.English),
	}
}

// intRange returns a random int in [lo, hi].
func (g *Generator) intRange(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

// VIN returns a 17 character VIN for the brand key and model code.
func (g *Generator) VIN(brand, modelCode string, year int) string {
	wmi, ok := brandWMI[brand]
	if !ok {
		wmi = defaultWMI
	}
	yc, ok := yearCodes[year]
	if !ok {
		yc = defaultYearCode
	}

	var sb strings.Builder
	sb.WriteString(wmi)
	sb.WriteString(modelCode)
	sb.WriteString(yc)
	for i := 0; i < 11; i++ {
		sb.WriteByte(vinChars[g.rng.Intn(len(vinChars))])
	}
	return sb.String()
}

// DaysOnLot picks a weighted band, then a day uniformly within it.
func (g *Generator) DaysOnLot() int {
	total := 0
	for _, b := range daysOnLotDistribution {
		total += b.weight
	}

	pick := g.rng.Intn(total)
	for _, b := range daysOnLotDistribution {
		if pick < b.weight {
			return b.lo + g.rng.Intn(b.hi-b.lo)
		}
		pick -= b.weight
	}
	last := daysOnLotDistribution[len(daysOnLotDistribution)-1]
	return last.lo
}

// Generate produces two or three units for every catalog entry.
func (g *Generator) Generate() []Vehicle {
	var vehicles []Vehicle
	stock := firstStock

	for _, base := range g.catalog {
		units := g.intRange(2, 3)
		for i := 0; i < units; i++ {
			days := g.DaysOnLot()
			depth := g.intRange(2, 10)
			incentives := g.intRange(1500, 4000)
			market := round1(-8 + g.rng.Float64()*13)

			score := DealScore(days, depth, incentives, market)

			vehicles = append(vehicles, Vehicle{
				VIN:            g.VIN(base.Brand, base.Code, ModelYear),
				StockNumber:    StockNumber(base.Brand, stock),
				Brand:          g.title.String(base.Brand),
				Model:          base.Model,
				Year:           ModelYear,
				Trim:           base.Trim,
				Type:           base.Type,
				Color:          g.color(base.Brand),
				Engine:         base.Engine,
				Horsepower:     base.HP,
				MPG:            base.MPG,
				Seating:        base.Seats,
				Drivetrain:     base.Drive,
				MSRP:           base.MSRP,
				Invoice:        base.Invoice,
				TargetPrice:    TargetPrice(base.MSRP, base.Invoice),
				MinimumPrice:   MinimumPrice(base.Invoice),
				Incentives:     incentives,
				DaysOnLot:      days,
				InventoryDepth: depth,
				MarketPosition: market,
				DealScore:      score,
				Flexibility:    FlexibilityFor(score),
				ImageURL:       CatalogImageURL(base.Brand, base.Model),
				Status:         StatusAvailable,
			})
			stock++
		}
	}

	return vehicles
}

// round1 rounds to one decimal; adding zero turns -0 into 0.
func round1(f float64) float64 {
	return math.Round(f*10)/10 + 0
}

func (g *Generator) color(brand string) string {
	palette := Colors[brand]
	if len(palette) == 0 {
		return ""
	}
	return palette[g.rng.Intn(len(palette))]
}

// StockNumber is the upper-cased first two letters of the brand plus the counter.
func StockNumber(brand string, n int) string {
	prefix := brand
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	return fmt.Sprintf("%s%d", strings.ToUpper(prefix), n)
}

// CatalogImageURL is the shared studio photo path for a model, e.g.
// /images/chevrolet/silverado-1500-white.jpg.
func CatalogImageURL(brand, model string) string {
	slug := strings.ToLower(strings.ReplaceAll(model, " ", "-"))
	return fmt.Sprintf("/images/%s/%s-white.jpg", brand, slug)
}

// ImageSearches builds the photo sourcing worklist, one entry per vehicle.
func ImageSearches(vehicles []Vehicle) []ImageSearch {
	searches := make([]ImageSearch, 0, len(vehicles))
	for _, v := range vehicles {
		searches = append(searches, ImageSearch{
			Query:   fmt.Sprintf("%d %s %s white background studio", ModelYear, v.Brand, v.Model),
			Vehicle: fmt.Sprintf("%d %s %s %s", v.Year, v.Brand, v.Model, v.Trim),
			SaveAs:  v.ImageURL,
		})
	}
	return searches
}

// Summary counts vehicles per brand and per flexibility tier.
type Summary struct {
	Brands      map[string]int
	Flexibility map[string]int
}

func Summarize(vehicles []Vehicle) Summary {
	s := Summary{
		Brands:      make(map[string]int),
		Flexibility: make(map[string]int),
	}
	for _, v := range vehicles {
		s.Brands[v.Brand]++
		s.Flexibility[v.Flexibility]++
	}
	return s
}
