package models

// Ownable expose explicitement l'identité propriétaire d'une entité.
// Les contrôles d'accès passent par cette interface, jamais par introspection.
type Ownable interface {
	OwnerID() string
}
