package entity

import "time"

// Store es una tienda/farmacia. ContactPersonIDs son los usuarios autorizados
// a aprobar o rechazar traspasos dirigidos a esta tienda.
type Store struct {
	ID               string
	Name             string
	ContactPersonIDs []string
	EntityID         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsContactPerson indica si el usuario puede aprobar traspasos hacia esta tienda.
func (s *Store) IsContactPerson(userID string) bool {
	for _, id := range s.ContactPersonIDs {
		if id == userID {
			return true
		}
	}
	return false
}
