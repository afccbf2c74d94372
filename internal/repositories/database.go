package repository

import (
	"github.com/saasify-labs/commerce-api/internal/store"
)

// Repositories bundles the per-collection repositories built on one injected
// store handle.
type Repositories struct {
	User    UserRepository
	Product ProductRepository
	Cart    CartRepository
	Order   OrderRepository
}

func New(s *store.Store) *Repositories {
	return &Repositories{
		User:    NewUserRepo(s.DB),
		Product: NewProductRepo(s.DB),
		Cart:    NewCartRepo(s.DB),
		Order:   NewOrderRepo(s.Client, s.DB),
	}
}
