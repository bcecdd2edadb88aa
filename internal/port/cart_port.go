package port

import (
	"context"

	"github.com/nikolayk812/foodfleet/internal/domain"
)

// CartRepository serializes a cart at session boundaries. The cart store itself
// never reads from it implicitly.
type CartRepository interface {
	GetCart(ctx context.Context, ownerID string) (domain.CartSnapshot, error)
	SaveCart(ctx context.Context, ownerID string, cart domain.CartSnapshot) error
	DeleteCart(ctx context.Context, ownerID string) (bool, error)
}
