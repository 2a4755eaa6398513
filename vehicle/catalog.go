package vehicle

// CatalogEntry is a model template the generator stamps inventory units from.
type CatalogEntry struct {
	Brand   string // lower case key, e.g. "chevrolet"
	Model   string
	Trim    string
	MSRP    int
	Invoice int
	Type    string
	Engine  string
	HP      int
	MPG     string
	Seats   int
	Drive   string
	Code    string // two characters placed after the WMI in generated VINs
}

var Catalog = []CatalogEntry{
	// Chevrolet
	{"chevrolet", "Tahoe", "Premier", 63995, 59200, "Full-Size SUV", "5.3L V8", 355, "15/20", 8, "4WD", "YY"},
	{"chevrolet", "Silverado 1500", "LTZ", 58995, 54500, "Full-Size Pickup", "5.3L V8", 355, "17/23", 6, "4WD", "AK"},
	{"chevrolet", "Traverse", "Premier", 48500, 44800, "Midsize SUV", "2.5L Turbo I4", 328, "20/26", 8, "AWD", "EV"},
	{"chevrolet", "Equinox", "Premier", 37200, 34300, "Compact SUV", "1.5L Turbo I4", 175, "26/31", 5, "AWD", "XL"},
	{"chevrolet", "Blazer", "RS", 44500, 41100, "Midsize SUV", "2.0L Turbo I4", 228, "22/29", 5, "AWD", "BL"},

	// GMC
	{"gmc", "Yukon", "Denali", 79500, 73500, "Full-Size SUV", "5.3L V8", 355, "15/20", 8, "4WD", "YK"},
	{"gmc", "Sierra 1500", "Denali", 68900, 63700, "Full-Size Pickup", "5.3L V8", 355, "17/23", 6, "4WD", "SR"},
	{"gmc", "Acadia", "Denali", 53800, 49700, "Midsize SUV", "2.5L Turbo I4", 328, "21/27", 7, "AWD", "AC"},
	{"gmc", "Terrain", "Denali", 42100, 38900, "Compact SUV", "1.5L Turbo I4", 175, "26/30", 5, "AWD", "TR"},

	// Cadillac
	{"cadillac", "Escalade", "Premium Luxury", 91190, 84300, "Full-Size Luxury SUV", "6.2L V8", 420, "14/19", 8, "4WD", "ES"},
	{"cadillac", "XT5", "Premium Luxury", 53690, 49600, "Midsize Luxury SUV", "2.0L Turbo I4", 237, "21/28", 5, "AWD", "XT"},
	{"cadillac", "XT6", "Sport", 61890, 57200, "Midsize Luxury SUV", "3.6L V6", 310, "18/25", 7, "AWD", "X6"},

	// Buick
	{"buick", "Enclave", "Avenir", 57200, 52900, "Midsize SUV", "3.6L V6", 310, "18/25", 7, "AWD", "EN"},
	{"buick", "Encore GX", "Avenir", 34900, 32200, "Compact SUV", "1.3L Turbo I3", 155, "29/32", 5, "AWD", "EG"},
	{"buick", "Envision", "Avenir", 46300, 42800, "Compact SUV", "2.0L Turbo I4", 228, "22/29", 5, "AWD", "EV"},
}

var Colors = map[string][]string{
	"chevrolet": {"Summit White", "Black", "Silver Ice Metallic", "Cherry Red Tintcoat"},
	"gmc":       {"Summit White", "Onyx Black", "Satin Steel Metallic", "Cayenne Red Tintcoat"},
	"cadillac":  {"Crystal White Tricoat", "Black Raven", "Argent Silver Metallic"},
	"buick":     {"White Frost Tricoat", "Ebony Twilight Metallic", "Quicksilver Metallic"},
}

// World manufacturer identifiers by brand key.
var brandWMI = map[string]string{
	"chevrolet": "1G1",
	"gmc":       "1GT",
	"cadillac":  "1GY",
	"buick":     "5GA",
}

// Model year characters (VIN position 10).
var yearCodes = map[int]string{
	2023: "P",
	2024: "R",
	2025: "S",
}

const (
	defaultWMI      = "1G1"
	defaultYearCode = "R"
	// vinChars omits I, O and Q.
	vinChars = "ABCDEFGHJKLMNPRSTUVWXYZ0123456789"
)
