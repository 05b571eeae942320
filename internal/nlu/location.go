package nlu

import (
	"regexp"
	"strconv"

	"github.com/hydroassist/go-hydro-chatbot/internal/models"
)

// coordPattern matches two numbers separated by a comma or whitespace, e.g.
// "-34.9205, -57.9536" or "-34.9205 -57.9536".
var coordPattern = regexp.MustCompile(`(-?\d+\.?\d*)[,\s]+(-?\d+\.?\d*)`)

// Extractor derives location data from structured entities and raw message
// text. Coordinates found in text are only accepted inside the configured
// region; the default coordinate fills whatever stays missing.
type Extractor struct {
	region models.Region
	def    models.Coordinate
}

func NewExtractor(region models.Region, def models.Coordinate) *Extractor {
	return &Extractor{region: region, def: def}
}

// FromEntities scans the entity list in order. Recognized entity types are
// ubicacion, latitud, longitud and direccion; anything else is ignored. A
// field already set by an earlier entity is not overwritten, and entity
// values that fail to parse as floats are silently dropped.
func (e *Extractor) FromEntities(entities []models.Entity) models.LocationData {
	var loc models.LocationData
	for _, ent := range entities {
		switch ent.Entity {
		case "ubicacion":
			if loc.LocationName == "" {
				loc.LocationName = ent.Value
			}
		case "latitud":
			if !loc.HasLat {
				if v, err := strconv.ParseFloat(ent.Value, 64); err == nil {
					loc.Lat = v
					loc.HasLat = true
				}
			}
		case "longitud":
			if !loc.HasLon {
				if v, err := strconv.ParseFloat(ent.Value, 64); err == nil {
					loc.Lon = v
					loc.HasLon = true
				}
			}
		case "direccion":
			if loc.Address == "" {
				loc.Address = ent.Value
			}
		}
	}
	return loc
}

// FromText extracts a coordinate pair from free text. Only the first regex
// match in document order is considered; a first match outside the region
// yields nothing.
func (e *Extractor) FromText(text string) (models.Coordinate, bool) {
	m := coordPattern.FindStringSubmatch(text)
	if m == nil {
		return models.Coordinate{}, false
	}

	lat, errLat := strconv.ParseFloat(m[1], 64)
	lon, errLon := strconv.ParseFloat(m[2], 64)
	if errLat != nil || errLon != nil {
		return models.Coordinate{}, false
	}

	c := models.Coordinate{Lat: lat, Lon: lon}
	if !e.region.Contains(c) {
		return models.Coordinate{}, false
	}
	return c, true
}

// Extract runs the entity scan and, if lat or lon is still missing, the text
// extraction. A text match fills both fields at once.
func (e *Extractor) Extract(entities []models.Entity, text string) models.LocationData {
	loc := e.FromEntities(entities)
	if !loc.HasLat || !loc.HasLon {
		if c, ok := e.FromText(text); ok {
			loc.Lat = c.Lat
			loc.Lon = c.Lon
			loc.HasLat = true
			loc.HasLon = true
		}
	}
	return loc
}

// Resolve returns the coordinate for loc, substituting the configured
// default for whichever of lat/lon is absent.
func (e *Extractor) Resolve(loc models.LocationData) models.Coordinate {
	return loc.Resolve(e.def)
}
