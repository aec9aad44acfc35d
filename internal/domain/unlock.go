package domain

import "time"

// UnlockAttributes holds the randomized attributes of an unlocked item
type UnlockAttributes struct {
	Seed     *int     `json:"seed,omitempty"`
	StatTrak *int     `json:"stattrak,omitempty"`
	Wear     *float64 `json:"wear,omitempty"`
}

// UnlockResult is the outcome of opening a container. It is also the payload a
// client submits back for server-side verification.
type UnlockResult struct {
	ItemID               int              `json:"itemId" validate:"required,gt=0"`
	Special              bool             `json:"special"`
	RarityForSoundEffect string           `json:"rarityForSoundEffect"`
	Attributes           UnlockAttributes `json:"attributes"`
}

// Instance converts the result into an unequipped item instance
func (r *UnlockResult) Instance() ItemInstance {
	return ItemInstance{
		ItemID:   r.ItemID,
		Seed:     clonePtr(r.Attributes.Seed),
		StatTrak: clonePtr(r.Attributes.StatTrak),
		Wear:     clonePtr(r.Attributes.Wear),
	}
}

// UnlockRecord is one persisted container opening
type UnlockRecord struct {
	ID          int64        `json:"id"`
	OwnerID     string       `json:"ownerId"`
	ContainerID int          `json:"containerId"`
	Result      UnlockResult `json:"result"`
	CreatedAt   time.Time    `json:"createdAt"`
}
