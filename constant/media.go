package constant

// Library and playback defaults shared by the server and the player.
const (
	// VideosPerPage is the fixed page size of the listing endpoint.
	VideosPerPage = 9

	// DefaultContentType is served when a file extension has no known video type.
	DefaultContentType = "video/mp4"

	// FallbackWidth and FallbackHeight size the render surface before the source reports its dimensions.
	FallbackWidth  = 1280
	FallbackHeight = 720

	// LivenessMessage is the body of the root endpoint.
	LivenessMessage = "Oddbit Player server is running"
)
