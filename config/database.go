package config

import "time"

// MongoConfig contains MongoDB configuration.
type MongoConfig struct {
	// URI is the full MongoDB connection string.
	URI string `env:"URI" envDefault:"mongodb://localhost:27017"`

	// Database is the database name holding all collections.
	Database string `env:"DATABASE" envDefault:"tourdesh"`

	// ConnectTimeout bounds the initial connect and ping.
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"5s"`
}
