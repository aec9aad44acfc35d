package domain

// InventorySnapshot is the persisted form of an owner's inventory
type InventorySnapshot struct {
	Capacity int            `json:"capacity"`
	Items    []ItemInstance `json:"items"`
	Version  int64          `json:"version"`
}
