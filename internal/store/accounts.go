// Package store owns the in-memory account and category collections for
// the lifetime of the process. Restart empties all state; durability is an
// acknowledged tradeoff of the current design. Every collection is guarded
// by its own mutex so find-then-mutate sequences stay atomic under
// concurrent requests.
package store

import (
	"sync"

	"github.com/mlc-apps/finance-backend/internal/common/clock"
	"github.com/mlc-apps/finance-backend/internal/common/constants"
	"github.com/mlc-apps/finance-backend/internal/common/crypto"
	"github.com/mlc-apps/finance-backend/internal/finance/domain"
	"github.com/mlc-apps/finance-backend/internal/observability/metrics"
)

type AccountInput struct {
	Name           string
	Type           string
	Currency       string
	InitialBalance float64
	Note           string
}

type AccountStore struct {
	mu       sync.RWMutex
	accounts []domain.Account
	idGen    crypto.IDGenerator
	clock    clock.Clock
}

func NewAccountStore(idGen crypto.IDGenerator, clk clock.Clock) *AccountStore {
	return &AccountStore{
		accounts: []domain.Account{},
		idGen:    idGen,
		clock:    clk,
	}
}

// List returns a snapshot of all accounts in insertion order. Callers get
// copies; references never escape the store.
func (s *AccountStore) List() []domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metrics.StoreOperationsTotal.WithLabelValues("accounts", "list").Inc()

	snapshot := make([]domain.Account, len(s.accounts))
	copy(snapshot, s.accounts)
	return snapshot
}

func (s *AccountStore) Add(input AccountInput) domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := domain.Account{
		ID:             s.idGen.NewID(),
		Name:           input.Name,
		Type:           input.Type,
		Currency:       input.Currency,
		Balance:        input.InitialBalance,
		InitialBalance: input.InitialBalance,
		Status:         constants.AccountStatusActive,
		CreatedDate:    s.clock.Now(),
		Note:           input.Note,
	}

	s.accounts = append(s.accounts, account)

	metrics.StoreOperationsTotal.WithLabelValues("accounts", "add").Inc()
	metrics.StoreCollectionSize.WithLabelValues("accounts").Set(float64(len(s.accounts)))

	return account
}

// Update replaces the stored record matching account.ID in place. An absent
// id mutates nothing; the false return exists for logging and metrics, the
// operation still reports success to the caller.
func (s *AccountStore) Update(account domain.Account) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	metrics.StoreOperationsTotal.WithLabelValues("accounts", "update").Inc()

	for i := range s.accounts {
		if s.accounts[i].ID == account.ID {
			s.accounts[i] = account
			return true
		}
	}

	metrics.StoreMutationMisses.WithLabelValues("accounts", "update").Inc()
	return false
}

func (s *AccountStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	metrics.StoreOperationsTotal.WithLabelValues("accounts", "remove").Inc()

	for i := range s.accounts {
		if s.accounts[i].ID == id {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			metrics.StoreCollectionSize.WithLabelValues("accounts").Set(float64(len(s.accounts)))
			return true
		}
	}

	metrics.StoreMutationMisses.WithLabelValues("accounts", "remove").Inc()
	return false
}
