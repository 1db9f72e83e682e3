package conf

import (
	"google.golang.org/protobuf/types/known/durationpb"
)

// Bootstrap is the root configuration for the TradeGate service.
type Bootstrap struct {
	Server    *Server
	Data      *Data
	Cart      *Cart
	RateLimit *RateLimit
	Upload    *Upload
	Log       *Log
}

// Server holds transport configuration.
type Server struct {
	Http *Server_HTTP
}

// Server_HTTP holds HTTP server configuration.
type Server_HTTP struct {
	Network string
	Addr    string
	Timeout *durationpb.Duration
}

// Data holds data layer configuration.
type Data struct {
	Database *Data_Database
	Redis    *Data_Redis
}

// Data_Database holds the relational database configuration.
type Data_Database struct {
	Driver string
	Source string
}

// Data_Redis holds the Redis configuration.
type Data_Redis struct {
	Network      string
	Addr         string
	ReadTimeout  *durationpb.Duration
	WriteTimeout *durationpb.Duration
}

// Cart holds cart engine configuration.
type Cart struct {
	// KeyPrefix is the Redis key prefix for persisted carts.
	KeyPrefix string
}

// RateLimit holds sliding-window limits for sensitive actions.
type RateLimit struct {
	LoginLimit  int32
	LoginWindow *durationpb.Duration
	OtpLimit    int32
	OtpWindow   *durationpb.Duration
}

// Upload holds upload pipeline configuration.
type Upload struct {
	// MaxBytes is the maximum accepted upload size.
	MaxBytes int64
}

// Log holds logging configuration.
type Log struct {
	Level      string
	Format     string
	Env        string
	OutputFile string
}
