// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Server Endpoint - these keys govern the listening socket and HTTP surface.
const (
	ServerHost              = "server.host"
	ServerPort              = "server.port"
	ServerCorsOrigins       = "server.cors_origins"
	ServerMaxConnections    = "server.max_connections"
	ServerMetrics           = "server.metrics"
	ServerReadHeaderTimeout = "server.read_header_timeout"
)

// Media Library - these keys locate the on-disk video collection.
const (
	MediaDir = "media.dir"
)

// Streaming - these keys tune how byte windows are copied to clients.
const (
	StreamChunkSize = "stream.chunk_size"
	StreamRateLimit = "stream.rate_limit"
)

// Gallery Client - these keys configure the commands that talk to a running server.
const (
	ClientServer = "client.server"
)

// Media Playback - these keys configure the player session.
const (
	PlayerAutoplay = "player.autoplay"
	PlayerVolume   = "player.volume"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
