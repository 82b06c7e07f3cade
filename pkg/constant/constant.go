package constant

// BcryptCost matches the cost the legacy deployment hashed all existing
// passwords with; changing it only affects newly written hashes.
const BcryptCost = 10

// DefaultTokenExpiryMin is the session token lifetime in minutes. Tokens are
// stateless, so this is also the revocation horizon.
const DefaultTokenExpiryMin = 180

// Working-day defaults for the slot board.
const (
	DefaultScheduleStartHour   = 9
	DefaultScheduleEndHour     = 20
	DefaultSlotDurationMinutes = 45
)
