// Package identity maps authenticated principals from the external identity
// provider to local user rows, creating them on first sight.
package identity

import (
	"log"

	"campusfinder/backend/internal/apperr"
	"campusfinder/backend/internal/models"
)

// Principal is the verified identity extracted from a bearer token.
type Principal struct {
	Email   string
	Name    string
	Picture string
}

// Store is the persistence slice the resolver needs.
type Store interface {
	GetUserByEmail(email string) (*models.User, error)
	CreateUser(user *models.User) error
}

// Resolver performs the upsert-on-login sync.
type Resolver struct {
	Storage Store
}

func NewResolver(s Store) *Resolver {
	return &Resolver{Storage: s}
}

// Resolve returns the local user for the principal, creating one with
// role=normal and zero reputation on first login. Safe under concurrent
// first-login: if the insert loses the unique-email race, the winner's row
// is fetched and used.
func (r *Resolver) Resolve(p Principal) (*models.User, error) {
	if p.Email == "" {
		return nil, apperr.New(apperr.Unauthorized, "principal has no email")
	}

	user, err := r.Storage.GetUserByEmail(p.Email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	name := p.Name
	if name == "" {
		name = p.Email
	}
	fresh := &models.User{
		Email:            p.Email,
		Name:             name,
		Picture:          p.Picture,
		Role:             models.RoleNormal,
		ReputationPoints: 0,
		StrikeCount:      0,
		IsBanned:         false,
	}

	if err := r.Storage.CreateUser(fresh); err != nil {
		// A concurrent first login may have inserted the row between our
		// read and this insert. Fetch and use the winner.
		existing, lookupErr := r.Storage.GetUserByEmail(p.Email)
		if lookupErr == nil && existing != nil {
			return existing, nil
		}
		log.Printf("ERROR: Failed to sync user %s: %v", p.Email, err)
		return nil, err
	}

	log.Printf("INFO: New user %s synced from identity provider.", p.Email)
	return fresh, nil
}
