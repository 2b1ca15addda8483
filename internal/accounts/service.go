// Package accounts manages the chart of accounts.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/keepbook-dev/keepbook/internal/model"
	"github.com/keepbook-dev/keepbook/internal/validate"
)

// ErrNotFound is returned by operations whose contract requires the account
// to exist.
var ErrNotFound = errors.New("account not found")

// ErrInvalidUpdate is returned when an update touches an immutable field
// (id, type, system flag). Retyping an account would silently corrupt every
// balance derived from it.
var ErrInvalidUpdate = errors.New("invalid account update")

// Store is the slice of the durable store the registry needs.
type Store interface {
	GetAccount(ctx context.Context, accountID string) (model.Account, bool, error)
	PutAccount(ctx context.Context, acct model.Account) error
	ScanAccounts(ctx context.Context) ([]model.Account, error)
}

// Service provides registry operations over the accounts collection.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates an accounts Service.
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Get returns an account by ID. The second return is false when absent.
func (s *Service) Get(ctx context.Context, accountID string) (model.Account, bool, error) {
	return s.store.GetAccount(ctx, accountID)
}

// List returns accounts sorted by numeric ID ascending, optionally filtered
// by type. With activeOnly set, deactivated accounts are elided.
func (s *Service) List(ctx context.Context, accountType model.AccountType, activeOnly bool) ([]model.Account, error) {
	all, err := s.store.ScanAccounts(ctx)
	if err != nil {
		return nil, err
	}

	var result []model.Account
	for _, acct := range all {
		if accountType != "" && acct.Type != accountType {
			continue
		}
		if activeOnly && !acct.IsActive {
			continue
		}
		result = append(result, acct)
	}
	return result, nil
}

// UpdateParams holds the fields an update may touch. ID, Type and IsSystem
// are present only so attempts to change them can be rejected explicitly.
type UpdateParams struct {
	Name     *string
	Subtype  *string
	IsActive *bool

	ID       *string
	Type     *model.AccountType
	IsSystem *bool
}

// Update applies field changes to an account. Changing id, type, or the
// system flag is rejected with ErrInvalidUpdate rather than silently
// reverted. Missing accounts are an error here: the caller asked to change
// something specific.
func (s *Service) Update(ctx context.Context, accountID string, params UpdateParams) (model.Account, error) {
	acct, ok, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		return model.Account{}, err
	}
	if !ok {
		return model.Account{}, fmt.Errorf("updating %s: %w", accountID, ErrNotFound)
	}

	if params.ID != nil && *params.ID != acct.ID {
		return model.Account{}, fmt.Errorf("%w: id is immutable", ErrInvalidUpdate)
	}
	if params.Type != nil && *params.Type != acct.Type {
		return model.Account{}, fmt.Errorf("%w: type is immutable", ErrInvalidUpdate)
	}
	if params.IsSystem != nil && *params.IsSystem != acct.IsSystem {
		return model.Account{}, fmt.Errorf("%w: system flag is immutable", ErrInvalidUpdate)
	}

	if params.Name != nil {
		acct.Name = *params.Name
	}
	if params.Subtype != nil {
		acct.Subtype = *params.Subtype
	}
	if params.IsActive != nil {
		acct.IsActive = *params.IsActive
	}

	now := time.Now().UTC()
	acct.ModifiedAt = &now

	if err := s.store.PutAccount(ctx, acct); err != nil {
		return model.Account{}, err
	}
	return acct, nil
}

// Rename validates and applies a new account name.
func (s *Service) Rename(ctx context.Context, accountID, newName string) (model.Account, error) {
	if err := validate.AccountName(newName); err != nil {
		return model.Account{}, err
	}
	trimmed := strings.TrimSpace(newName)
	return s.Update(ctx, accountID, UpdateParams{Name: &trimmed})
}

// SetActive toggles an account's visibility without deleting any data.
func (s *Service) SetActive(ctx context.Context, accountID string, active bool) (model.Account, error) {
	return s.Update(ctx, accountID, UpdateParams{IsActive: &active})
}

// Create adds a user-defined account. System accounts come only from Seed.
func (s *Service) Create(ctx context.Context, acct model.Account) (model.Account, error) {
	if res := validate.Account(acct); !res.Valid() {
		return model.Account{}, fmt.Errorf("invalid account: %s", strings.Join(res.Errors, "; "))
	}

	if _, exists, err := s.store.GetAccount(ctx, acct.ID); err != nil {
		return model.Account{}, err
	} else if exists {
		return model.Account{}, fmt.Errorf("account %s already exists", acct.ID)
	}

	acct.IsSystem = false
	acct.CreatedAt = time.Now().UTC()
	acct.ModifiedAt = nil

	if err := s.store.PutAccount(ctx, acct); err != nil {
		return model.Account{}, err
	}
	return acct, nil
}

// Seed writes the default chart of accounts. Idempotent: the presence of the
// sentinel salary account means seeding already happened, and nothing is
// written. Returns the number of accounts seeded.
func (s *Service) Seed(ctx context.Context) (int, error) {
	_, seeded, err := s.store.GetAccount(ctx, sentinelAccountID)
	if err != nil {
		return 0, err
	}
	if seeded {
		s.logger.Debug("default accounts already seeded")
		return 0, nil
	}

	chart := DefaultChart()
	now := time.Now().UTC()
	for _, acct := range chart {
		acct.CreatedAt = now
		if err := s.store.PutAccount(ctx, acct); err != nil {
			return 0, fmt.Errorf("seeding account %s: %w", acct.ID, err)
		}
	}

	s.logger.Info("seeded default chart of accounts", "count", len(chart))
	return len(chart), nil
}
