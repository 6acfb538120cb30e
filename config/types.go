package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port           int      `yaml:"port" validate:"gt=0"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// DatabaseConfig points at the parsed timetable database
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// GTFSConfig contains GTFS static feed configuration
type GTFSConfig struct {
	Path string `yaml:"path"`
}

// RouterConfig tunes the routing core
type RouterConfig struct {
	// WindowHours is a search window length in hours, defaulted to 24 on
	// load. No routing code reads it: a query without an end time always
	// gets a fixed one-day window.
	WindowHours int `yaml:"windowHours" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server" validate:"required"`
	Database DatabaseConfig `yaml:"database"`
	GTFS     GTFSConfig     `yaml:"gtfs"`
	Router   RouterConfig   `yaml:"router"`
}
