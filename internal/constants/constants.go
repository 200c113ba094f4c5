package constants

// Centralized constants for headers, env keys and external service
// integration.
const (
	// Environment variable keys
	EnvConfigPath      = "DUEL_CONFIG"
	EnvDBPath          = "DUEL_DB"
	EnvRatingBaseURL   = "RATING_SERVICE_URL"
	EnvRatingAPIKey    = "RATING_SERVICE_API_KEY"
	EnvIdentityBaseURL = "IDENTITY_SERVICE_URL"
	EnvIdentityAPIKey  = "IDENTITY_SERVICE_API_KEY"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Rating service endpoints (relative to RATING_SERVICE_URL)
	RatingReportPath    = "/internal/matches/report"
	RatingAbandonedPath = "/internal/matches/abandoned"

	// Identity service endpoint (relative to IDENTITY_SERVICE_URL)
	IdentityResolvePath = "/internal/tokens/resolve"

	// Game type tag sent with every match report
	GameTypeDuel = "duel"
)

// Routes used by the backend router
const (
	RouteAPIPrefix   = "/api"
	RouteHealthz     = "/healthz"
	RouteRooms       = "/rooms"
	RouteRoomsJoin   = "/rooms/join"
	RouteRoomSocket  = "/rooms/:code/ws"
	RouteMatches     = "/matches"
	RouteLeaderboard = "/leaderboard"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyCode    = "code"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest   = "Invalid request"
	ErrRoomNotFound     = "Room not found"
	ErrRoomFull         = "Room is full"
	ErrTokenRequired    = "join token is required"
	ErrTokenRejected    = "join token was rejected"
	ErrUpgradeFailed    = "Failed to upgrade connection"
	ErrFailedFetchGames = "Failed to fetch matches"
	ErrFailedFetchStats = "Failed to fetch leaderboard"
	ErrFailedCreateRoom = "Failed to create room"
)

// Logging field names
const (
	LogFieldRoomCode  = "room_code"
	LogFieldSessionID = "session_id"
	LogFieldPlayerID  = "player_id"
	LogFieldTick      = "tick"
	LogFieldAddr      = "addr"
	LogFieldAttempt   = "attempt"
	LogFieldStatus    = "status"
	LogFieldWinner    = "winner"
)
