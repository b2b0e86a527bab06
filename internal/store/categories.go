package store

import (
	"sync"

	"github.com/mlc-apps/finance-backend/internal/common/crypto"
	"github.com/mlc-apps/finance-backend/internal/finance/domain"
	"github.com/mlc-apps/finance-backend/internal/observability/metrics"
)

type CategoryStore struct {
	mu     sync.RWMutex
	groups map[domain.Group][]domain.Category
	idGen  crypto.IDGenerator
}

func NewCategoryStore(idGen crypto.IDGenerator) *CategoryStore {
	return &CategoryStore{
		groups: map[domain.Group][]domain.Category{
			domain.GroupIncomes:  {},
			domain.GroupExpenses: {},
		},
		idGen: idGen,
	}
}

func (s *CategoryStore) List() domain.CategoryGroups {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metrics.StoreOperationsTotal.WithLabelValues("categories", "list").Inc()

	return domain.CategoryGroups{
		Incomes:  copyCategories(s.groups[domain.GroupIncomes]),
		Expenses: copyCategories(s.groups[domain.GroupExpenses]),
	}
}

func (s *CategoryStore) Add(group domain.Group, title string) domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	category := domain.Category{
		ID:    s.idGen.NewID(),
		Title: title,
	}

	s.groups[group] = append(s.groups[group], category)

	metrics.StoreOperationsTotal.WithLabelValues("categories", "add").Inc()
	s.recordSizeLocked(group)

	return category
}

// Remove deletes the matching id within one group only; ids are namespaced
// per group. Absent id is a no-op.
func (s *CategoryStore) Remove(group domain.Group, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	metrics.StoreOperationsTotal.WithLabelValues("categories", "remove").Inc()

	categories := s.groups[group]
	for i := range categories {
		if categories[i].ID == id {
			s.groups[group] = append(categories[:i], categories[i+1:]...)
			s.recordSizeLocked(group)
			return true
		}
	}

	metrics.StoreMutationMisses.WithLabelValues("categories", "remove").Inc()
	return false
}

// Replace swaps one group's contents wholesale, leaving the other group
// untouched.
func (s *CategoryStore) Replace(group domain.Group, categories []domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.groups[group] = copyCategories(categories)

	metrics.StoreOperationsTotal.WithLabelValues("categories", "replace").Inc()
	s.recordSizeLocked(group)
}

func (s *CategoryStore) recordSizeLocked(group domain.Group) {
	metrics.StoreCollectionSize.WithLabelValues("categories_" + string(group)).Set(float64(len(s.groups[group])))
}

func copyCategories(categories []domain.Category) []domain.Category {
	snapshot := make([]domain.Category, len(categories))
	copy(snapshot, categories)
	return snapshot
}
