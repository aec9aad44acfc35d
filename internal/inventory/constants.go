package inventory

// Operation names, used as metric and log labels by callers
const (
	OpAdd     = "add"
	OpRemove  = "remove"
	OpEquip   = "equip"
	OpUnequip = "unequip"
	OpOpen    = "open"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrFmtLoadItem    = "inventory slot %d: %w"
	ErrMsgNilSnapshot = "snapshot is nil"
	ErrMsgBadCapacity = "capacity must be positive"

	ErrFmtOverCapacity     = "%w: %d items exceed capacity %d"
	ErrFmtSlotNotPermitted = "%w: inventory slot %d: item cannot be equipped in %s"
	ErrFmtEquipConflict    = "%w: inventory slots %d and %d are both equipped in %s"
)
