package models

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Region is the bounding box used to validate coordinates extracted from
// free text as plausible for the service's operating area.
type Region struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

func (r Region) Contains(c Coordinate) bool {
	return c.Lat >= r.MinLat && c.Lat <= r.MaxLat &&
		c.Lon >= r.MinLon && c.Lon <= r.MaxLon
}

// Entity is a (type, value) annotation attached to an inbound message by an
// upstream NLU step.
type Entity struct {
	Entity string `json:"entity"`
	Value  string `json:"value"`
}

// LocationData collects whatever location information could be derived from a
// single message. Lat/Lon are only meaningful when the matching Has flag is
// set; callers fill the gaps with the configured default coordinate.
type LocationData struct {
	LocationName string
	Address      string
	Lat          float64
	Lon          float64
	HasLat       bool
	HasLon       bool
}

// Resolve returns the coordinate to use for this location, falling back to
// def for whichever of lat/lon is missing.
func (l LocationData) Resolve(def Coordinate) Coordinate {
	c := def
	if l.HasLat {
		c.Lat = l.Lat
	}
	if l.HasLon {
		c.Lon = l.Lon
	}
	return c
}
