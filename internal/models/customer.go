package models

import "time"

// Niveaux d'adhésion (codes à une lettre, bronze par défaut).
const (
	MembershipBronze = "B"
	MembershipSilver = "S"
	MembershipGold   = "G"
)

type Customer struct {
	ID         int64      `json:"id" db:"id"`
	UserID     string     `json:"user_id" db:"user_id"`
	Phone      string     `json:"phone" db:"phone"`
	BirthDate  *time.Time `json:"birth_date,omitempty" db:"birth_date"`
	Membership string     `json:"membership" db:"membership"`
}

// OwnerID implémente Ownable : un profil n'est modifiable que par son identité.
func (c Customer) OwnerID() string {
	return c.UserID
}

// ValidMembership vérifie le code d'adhésion.
func ValidMembership(m string) bool {
	switch m {
	case MembershipBronze, MembershipSilver, MembershipGold:
		return true
	}
	return false
}
