package attribute

// Attribute names used in error messages and metric labels
const (
	AttrWear     = "wear"
	AttrSeed     = "seed"
	AttrStatTrak = "stattrak"
	AttrNametag  = "nametag"
	AttrStickers = "stickers"
)

// Format strings for error construction
const (
	ErrFmtUnsupported     = "%w: %s on %s"
	ErrFmtFloatOutOfRange = "%w: %s %v not in [%v, %v]"
	ErrFmtIntOutOfRange   = "%w: %s %d not in [%d, %d]"
	ErrFmtInvalidNametag  = "%w: nametag %q"
	ErrFmtTooManyStickers = "%w: %d sticker slots, at most %d"
	ErrFmtStickerSlot     = "sticker slot %d: %w"
	ErrFmtNotASticker     = "%w: sticker slot %d holds item %d of type %s"
	ErrFmtStickerWear     = "%w: sticker slot %d wear %v not in [%v, %v]"
)
