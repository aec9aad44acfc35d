package domain

import "strings"

// Team is one side of a match
type Team int

const (
	TeamT  Team = 0
	TeamCT Team = 1
)

// String returns the short team code used in requests
func (t Team) String() string {
	switch t {
	case TeamT:
		return "t"
	case TeamCT:
		return "ct"
	default:
		return "unknown"
	}
}

// ParseTeam parses "t" or "ct" (case-insensitive)
func ParseTeam(s string) (Team, bool) {
	switch strings.ToLower(s) {
	case "t":
		return TeamT, true
	case "ct":
		return TeamCT, true
	default:
		return 0, false
	}
}

// EquipSlot is the dimension an equip flag lives in
type EquipSlot int

const (
	EquipSlotShared EquipSlot = iota // team-agnostic
	EquipSlotCT
	EquipSlotT
)

// SlotForTeam returns the equip slot for team
func SlotForTeam(team Team) EquipSlot {
	if team == TeamCT {
		return EquipSlotCT
	}
	return EquipSlotT
}

// Team returns the team the slot belongs to. ok is false for the shared slot.
func (s EquipSlot) Team() (Team, bool) {
	switch s {
	case EquipSlotCT:
		return TeamCT, true
	case EquipSlotT:
		return TeamT, true
	default:
		return 0, false
	}
}

func (s EquipSlot) String() string {
	switch s {
	case EquipSlotCT:
		return "ct"
	case EquipSlotT:
		return "t"
	default:
		return "shared"
	}
}
