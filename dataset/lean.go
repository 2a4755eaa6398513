package dataset

import (
	"bytes"
	"encoding/json"

	"github.com/best-deal/inventory/vehicle"
)

// LeanVehicle is the reduced-field record consumed by the client.
type LeanVehicle struct {
	VIN         string `json:"vin"`
	StockNumber string `json:"stockNumber"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Year        int    `json:"year"`
	Status      string `json:"status"`
	Image       string `json:"image"`
}

// ProcessedVehicle is a lean record carrying final derivative paths. Image and
// Thumbnail stay nil when no derivative could be produced.
type ProcessedVehicle struct {
	VIN         string  `json:"vin"`
	StockNumber string  `json:"stockNumber"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Year        int     `json:"year"`
	Color       string  `json:"color"`
	Status      string  `json:"status"`
	Image       *string `json:"image"`
	Thumbnail   *string `json:"thumbnail"`
}

func Lean(v vehicle.Vehicle) LeanVehicle {
	return LeanVehicle{
		VIN:         v.VIN,
		StockNumber: v.StockNumber,
		Brand:       v.Brand,
		Model:       v.Model,
		Year:        v.Year,
		Status:      v.Status,
		Image:       v.ImageURL,
	}
}

func Processed(v vehicle.Vehicle, image, thumb *string) ProcessedVehicle {
	return ProcessedVehicle{
		VIN:         v.VIN,
		StockNumber: v.StockNumber,
		Brand:       v.Brand,
		Model:       v.Model,
		Year:        v.Year,
		Color:       v.Color,
		Status:      v.Status,
		Image:       image,
		Thumbnail:   thumb,
	}
}

// ImageMap maps image basenames to the VINs that use them. Keys and VINs keep
// encounter order, including in the JSON encoding.
type ImageMap struct {
	keys []string
	vins map[string][]string
}

func NewImageMap() *ImageMap {
	return &ImageMap{vins: make(map[string][]string)}
}

func (m *ImageMap) Add(basename, vin string) {
	if _, ok := m.vins[basename]; !ok {
		m.keys = append(m.keys, basename)
	}
	m.vins[basename] = append(m.vins[basename], vin)
}

func (m *ImageMap) Len() int { return len(m.keys) }

// Basenames returns the keys in first-encounter order.
func (m *ImageMap) Basenames() []string {
	return append([]string(nil), m.keys...)
}

func (m *ImageMap) VINs(basename string) []string {
	return m.vins[basename]
}

func (m *ImageMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.vins[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores the map, keeping the key order of the document.
func (m *ImageMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = *NewImageMap()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var vins []string
		if err := dec.Decode(&vins); err != nil {
			return err
		}
		for _, vin := range vins {
			m.Add(key, vin)
		}
		if len(vins) == 0 {
			m.keys = append(m.keys, key)
			m.vins[key] = []string{}
		}
	}
	_, err := dec.Token()
	return err
}

// Project builds the lean dataset and the image map from the full dataset.
// Records without an image are kept in the lean output but not mapped.
func Project(vehicles []vehicle.Vehicle) ([]LeanVehicle, *ImageMap) {
	lean := make([]LeanVehicle, 0, len(vehicles))
	images := NewImageMap()

	for _, v := range vehicles {
		lean = append(lean, Lean(v))
		if base := v.ImageBasename(); base != "" {
			images.Add(base, v.VIN)
		}
	}

	return lean, images
}
