package services

import (
	"fmt"
	"sync"

	"branch_pos_backend/internal/models"
)

// Cart errors. Over-ceiling quantity attempts are not errors: the cart is
// left unchanged and a warning naming the item and its ceiling is recorded
// on the cart itself, matching how the terminal surfaces them inline.
var (
	ErrCartEmpty        = fmt.Errorf("%w: cart is empty", ErrValidation)
	ErrCheckoutInFlight = fmt.Errorf("%w: a sale submission is already in progress for this cart", ErrValidation)
	ErrUnknownCartItem  = fmt.Errorf("%w: item not in cart", ErrValidation)
)

// DefaultPaymentMethod is preselected for every new cart.
const DefaultPaymentMethod = "Cash"

// CartService manages one cart per operator. All invariants live here:
// quantities stay within [1, maxQuantity], the cart never holds two lines
// for the same item, and a cart being submitted cannot be submitted again.
type CartService interface {
	Get(userID int64) models.Cart
	Add(userID int64, option models.CatalogOption) models.Cart
	SetQuantity(userID int64, itemID int64, quantity int) (models.Cart, error)
	Remove(userID int64, itemID int64) models.Cart
	SetPaymentMethod(userID int64, method string) models.Cart

	// BeginCheckout atomically rejects empty carts and concurrent
	// submissions, then marks the cart as submitting and returns a copy of
	// its contents for the pipeline.
	BeginCheckout(userID int64) (models.Cart, error)
	// FinishCheckout releases the submitting flag. A committed checkout
	// clears the cart; a failed one leaves it populated for inspection and
	// retry, with the failure message as its warning.
	FinishCheckout(userID int64, committed bool, warning string)
}

type cartState struct {
	cart       models.Cart
	submitting bool
}

type cartService struct {
	mu    sync.Mutex
	carts map[int64]*cartState
}

// NewCartService creates a new instance of CartService.
func NewCartService() CartService {
	return &cartService{carts: make(map[int64]*cartState)}
}

// stateLocked returns the operator's cart state, creating it on first use.
// Caller holds s.mu.
func (s *cartService) stateLocked(userID int64) *cartState {
	st, ok := s.carts[userID]
	if !ok {
		st = &cartState{cart: models.Cart{PaymentMethod: DefaultPaymentMethod}}
		s.carts[userID] = st
	}
	return st
}

func (s *cartService) Get(userID int64) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCart(s.stateLocked(userID).cart)
}

// Add inserts a new line with quantity 1, or increments an existing line by
// 1. An increment that would exceed the stock ceiling known at selection
// time is rejected and the cart is left unchanged. A sold-out entry never
// becomes a line: the option lists filter those out, but an entry can also
// arrive by direct item ID.
func (s *cartService) Add(userID int64, option models.CatalogOption) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stateLocked(userID)
	st.cart.Warning = ""

	entry := option.Raw
	if entry.Quantity < 1 {
		st.cart.Warning = fmt.Sprintf("Only %d available for %s", entry.Quantity, entry.Name)
		return copyCart(st.cart)
	}
	for i := range st.cart.Lines {
		line := &st.cart.Lines[i]
		if line.ItemID != entry.ItemID {
			continue
		}
		if line.Quantity+1 > entry.Quantity {
			st.cart.Warning = fmt.Sprintf("Only %d available for %s", entry.Quantity, entry.Name)
			return copyCart(st.cart)
		}
		line.Quantity++
		return copyCart(st.cart)
	}

	st.cart.Lines = append(st.cart.Lines, models.CartLine{
		ItemID:      entry.ItemID,
		BranchID:    entry.BranchID,
		Name:        entry.Name,
		UnitPrice:   entry.Price,
		Quantity:    1,
		MaxQuantity: entry.Quantity,
	})
	return copyCart(st.cart)
}

// SetQuantity updates a line's quantity. Sub-1 input is coerced to 1; a
// value above the line's ceiling is rejected, the prior quantity retained
// and a warning raised. A valid update clears any prior warning.
func (s *cartService) SetQuantity(userID int64, itemID int64, quantity int) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stateLocked(userID)
	for i := range st.cart.Lines {
		line := &st.cart.Lines[i]
		if line.ItemID != itemID {
			continue
		}
		if quantity < 1 {
			quantity = 1
		}
		if quantity > line.MaxQuantity {
			st.cart.Warning = fmt.Sprintf("Only %d available for %s", line.MaxQuantity, line.Name)
			return copyCart(st.cart), nil
		}
		line.Quantity = quantity
		st.cart.Warning = ""
		return copyCart(st.cart), nil
	}
	return copyCart(st.cart), ErrUnknownCartItem
}

// Remove deletes a line unconditionally; removing an absent item is not an
// error.
func (s *cartService) Remove(userID int64, itemID int64) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stateLocked(userID)
	lines := st.cart.Lines[:0]
	for _, line := range st.cart.Lines {
		if line.ItemID != itemID {
			lines = append(lines, line)
		}
	}
	st.cart.Lines = lines
	return copyCart(st.cart)
}

func (s *cartService) SetPaymentMethod(userID int64, method string) models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stateLocked(userID)
	if method != "" {
		st.cart.PaymentMethod = method
	}
	return copyCart(st.cart)
}

func (s *cartService) BeginCheckout(userID int64) (models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stateLocked(userID)
	if st.submitting {
		return copyCart(st.cart), ErrCheckoutInFlight
	}
	if len(st.cart.Lines) == 0 {
		return copyCart(st.cart), ErrCartEmpty
	}
	st.submitting = true
	st.cart.Warning = ""
	return copyCart(st.cart), nil
}

func (s *cartService) FinishCheckout(userID int64, committed bool, warning string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stateLocked(userID)
	st.submitting = false
	if committed {
		st.cart.Lines = nil
		st.cart.Warning = ""
		return
	}
	st.cart.Warning = warning
}

func copyCart(c models.Cart) models.Cart {
	out := c
	out.Lines = make([]models.CartLine, len(c.Lines))
	copy(out.Lines, c.Lines)
	return out
}
