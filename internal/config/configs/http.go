package configs

// HTTP defines configuration for the HTTP server exposing the reporting
// API and the /metrics endpoint.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port uint16 `env:"PORT" envDefault:"8080"`
}
