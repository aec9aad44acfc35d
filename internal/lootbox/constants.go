package lootbox

// ============================================================================
// Odds
// ============================================================================

// BaseOdd is the unnormalized weight of the lowest tier present in a container.
// Each following present tier gets BaseOdd / OddDivisor^k.
const BaseOdd = 0.8

// OddDivisor is the per-tier falloff of unnormalized weights.
const OddDivisor = 5.0

// StatTrakOdd is the probability that a stat-track capable drop is minted with a counter.
const StatTrakOdd = 1.0 / 10

// DefaultOddsCacheSize bounds the per-container odds table cache.
const DefaultOddsCacheSize = 512

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrFmtNotAContainer   = "%w: item %d (%s)"
	ErrFmtEmptyContainer  = "%w: container %d has no drawable items"
	ErrFmtForeignItem     = "%w: item %d is not in container %d"
	ErrFmtContainedItem   = "container %d: %w"
	ErrFmtUnlockedItem    = "unlocked item %d: %w"
	ErrFmtSimulationOpens = "%w: opens must be positive, got %d"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgContainerUnlocked   = "Container unlocked"
	LogMsgUnlockRejected      = "Unlock result rejected"
	LogMsgUnrankedContentItem = "Container content has no rarity, skipping"
)

// Log field keys for structured logging
const (
	LogFieldContainer = "container_id"
	LogFieldItem      = "item_id"
	LogFieldTier      = "tier"
	LogFieldSpecial   = "special"
	LogFieldKind      = "kind"
	LogFieldError     = "error"
)
