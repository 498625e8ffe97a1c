package constants

// EnvHealthURL points the container health probe at the server. The other
// ARENA_* variables are declared as struct tags on config.Env.
const EnvHealthURL = "ARENA_HEALTH_URL"

// Defaults
const (
	DefaultConfigPath = "./arena_config.json"
	DefaultAddress    = ":8080"
	DefaultHealthURL  = "http://127.0.0.1:8080/api/version"
)

// Routes used by the backend router
const (
	RouteAPIPrefix    = "/api"
	RouteCharacters   = "/characters"
	RouteOpponent     = "/opponent"
	RouteBattles      = "/battles"
	RouteBattleByID   = "/battles/:battleID"
	RouteBattleAction = "/battles/:battleID/action"
	RouteVersion      = "/version"

	ParamBattleID = "battleID"
)

// Common JSON response keys
const (
	JSONKeyError    = "error"
	JSONKeyMessage  = "message"
	JSONKeyBattle   = "battle"
	JSONKeyBattleID = "battle_id"
	JSONKeyAccepted = "accepted"
)

// Error messages returned by the API
const (
	ErrInvalidRequest        = "Invalid request"
	ErrInvalidAction         = "Invalid action"
	ErrCharacterRequired     = "character_id is required"
	ErrCharacterNotFound     = "Character not found"
	ErrBattleNotFound        = "Battle not found"
	ErrFailedFetchCharacters = "Failed to fetch characters"
	ErrFailedStartBattle     = "Failed to start battle"
	ErrFailedSubmitAction    = "Failed to submit action"
	ErrRosterUnavailable     = "Character roster unavailable"

	MsgActionIgnored = "Action not available right now"
)

// Logging field names
const (
	LogFieldBattleID    = "battle_id"
	LogFieldCharacterID = "character_id"
	LogFieldAction      = "action"
	LogFieldOutcome     = "outcome"
	LogFieldRound       = "round"
	LogFieldCount       = "count"
	LogFieldDuration    = "duration"
	LogFieldAddr        = "addr"
	LogFieldConfigPath  = "config_path"
	LogFieldDBPath      = "db_path"
	LogFieldVersion     = "version"
)
