package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/domain"
	"github.com/Apurer/franchise-catalog-api/internal/domains/catalog/ports"
)

// Store keeps franchises, branches and products in process memory.
// It enforces the same uniqueness and stock constraints as the relational schema,
// so the services behave identically against either backend.
type Store struct {
	mu         sync.RWMutex
	franchises map[int64]*domain.Franchise
	branches   map[int64]*domain.Branch
	products   map[int64]*domain.Product
	nextID     int64
}

func NewStore() *Store {
	return &Store{
		franchises: map[int64]*domain.Franchise{},
		branches:   map[int64]*domain.Branch{},
		products:   map[int64]*domain.Product{},
	}
}

// Franchises returns the franchise gateway backed by the store.
func (s *Store) Franchises() *FranchiseRepository { return &FranchiseRepository{store: s} }

// Branches returns the branch gateway backed by the store.
func (s *Store) Branches() *BranchRepository { return &BranchRepository{store: s} }

// Products returns the product gateway backed by the store.
func (s *Store) Products() *ProductRepository { return &ProductRepository{store: s} }

// TopProducts returns the read model backed by the store.
func (s *Store) TopProducts() *TopProductQuery { return &TopProductQuery{store: s} }

func (s *Store) allocateID() int64 {
	s.nextID++
	return s.nextID
}

var (
	_ ports.FranchiseRepository = (*FranchiseRepository)(nil)
	_ ports.BranchRepository    = (*BranchRepository)(nil)
	_ ports.ProductRepository   = (*ProductRepository)(nil)
	_ ports.TopProductQuery     = (*TopProductQuery)(nil)
)

type FranchiseRepository struct {
	store *Store
}

func (r *FranchiseRepository) ExistsByName(_ context.Context, name string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.franchiseNamed(name) != nil, nil
}

func (r *FranchiseRepository) FindByID(_ context.Context, id int64) (*domain.Franchise, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	franchise, ok := r.store.franchises[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *franchise
	return &clone, nil
}

func (r *FranchiseRepository) Create(_ context.Context, franchise *domain.Franchise) (*domain.Franchise, error) {
	if franchise.ID != 0 {
		return nil, ports.ErrIDAssigned
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.franchiseNamed(franchise.Name) != nil {
		return nil, ports.ErrDuplicate
	}
	clone := *franchise
	clone.ID = r.store.allocateID()
	r.store.franchises[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *FranchiseRepository) UpdateName(_ context.Context, id int64, name string) (*domain.Franchise, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	franchise, ok := r.store.franchises[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if other := r.store.franchiseNamed(name); other != nil && other.ID != id {
		return nil, ports.ErrDuplicate
	}
	franchise.Name = name
	clone := *franchise
	return &clone, nil
}

func (s *Store) franchiseNamed(name string) *domain.Franchise {
	for _, franchise := range s.franchises {
		if franchise.Name == name {
			return franchise
		}
	}
	return nil
}

type BranchRepository struct {
	store *Store
}

func (r *BranchRepository) ExistsByFranchiseIDAndName(_ context.Context, franchiseID int64, name string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.branchNamed(franchiseID, name) != nil, nil
}

func (r *BranchRepository) FindByID(_ context.Context, id int64) (*domain.Branch, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	branch, ok := r.store.branches[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *branch
	return &clone, nil
}

func (r *BranchRepository) Create(_ context.Context, branch *domain.Branch) (*domain.Branch, error) {
	if branch.ID != 0 {
		return nil, ports.ErrIDAssigned
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.franchises[branch.FranchiseID]; !ok {
		return nil, ports.ErrNotFound
	}
	if r.store.branchNamed(branch.FranchiseID, branch.Name) != nil {
		return nil, ports.ErrDuplicate
	}
	clone := *branch
	clone.ID = r.store.allocateID()
	r.store.branches[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *BranchRepository) UpdateName(_ context.Context, id int64, name string) (*domain.Branch, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	branch, ok := r.store.branches[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if other := r.store.branchNamed(branch.FranchiseID, name); other != nil && other.ID != id {
		return nil, ports.ErrDuplicate
	}
	branch.Name = name
	clone := *branch
	return &clone, nil
}

func (s *Store) branchNamed(franchiseID int64, name string) *domain.Branch {
	for _, branch := range s.branches {
		if branch.FranchiseID == franchiseID && branch.Name == name {
			return branch
		}
	}
	return nil
}

type ProductRepository struct {
	store *Store
}

func (r *ProductRepository) ExistsByBranchIDAndName(_ context.Context, branchID int64, name string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.productNamed(branchID, name) != nil, nil
}

func (r *ProductRepository) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	product, ok := r.store.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *ProductRepository) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product.ID != 0 {
		return nil, ports.ErrIDAssigned
	}
	if product.Stock < 0 {
		return nil, domain.ErrNegativeStock
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.branches[product.BranchID]; !ok {
		return nil, ports.ErrNotFound
	}
	if r.store.productNamed(product.BranchID, product.Name) != nil {
		return nil, ports.ErrDuplicate
	}
	clone := *product
	clone.ID = r.store.allocateID()
	r.store.products[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *ProductRepository) UpdateName(_ context.Context, id int64, name string) (*domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	product, ok := r.store.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if other := r.store.productNamed(product.BranchID, name); other != nil && other.ID != id {
		return nil, ports.ErrDuplicate
	}
	product.Name = name
	clone := *product
	return &clone, nil
}

func (r *ProductRepository) UpdateStock(_ context.Context, id int64, stock int) (*domain.Product, error) {
	if stock < 0 {
		return nil, domain.ErrNegativeStock
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	product, ok := r.store.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	product.Stock = stock
	clone := *product
	return &clone, nil
}

func (r *ProductRepository) DeleteByID(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.store.products, id)
	return nil
}

func (s *Store) productNamed(branchID int64, name string) *domain.Product {
	for _, product := range s.products {
		if product.BranchID == branchID && product.Name == name {
			return product
		}
	}
	return nil
}

// TopProductQuery computes the top product per branch on the fly.
type TopProductQuery struct {
	store *Store
}

// FindByFranchiseID returns one row per branch of the franchise that has products.
// The highest stock wins; ties go to the lexically smaller product name, then the smaller id.
// Rows are ordered by branch id.
func (q *TopProductQuery) FindByFranchiseID(_ context.Context, franchiseID int64) ([]domain.TopProduct, error) {
	q.store.mu.RLock()
	defer q.store.mu.RUnlock()
	franchise, ok := q.store.franchises[franchiseID]
	if !ok {
		return []domain.TopProduct{}, nil
	}
	best := map[int64]*domain.Product{}
	for _, product := range q.store.products {
		branch, ok := q.store.branches[product.BranchID]
		if !ok || branch.FranchiseID != franchiseID {
			continue
		}
		if current, ok := best[branch.ID]; !ok || outranks(product, current) {
			best[branch.ID] = product
		}
	}
	rows := make([]domain.TopProduct, 0, len(best))
	for branchID, product := range best {
		branch := q.store.branches[branchID]
		rows = append(rows, domain.TopProduct{
			FranchiseID:   franchise.ID,
			FranchiseName: franchise.Name,
			BranchID:      branch.ID,
			BranchName:    branch.Name,
			ProductID:     product.ID,
			ProductName:   product.Name,
			Stock:         product.Stock,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].BranchID < rows[j].BranchID })
	return rows, nil
}

func outranks(candidate, current *domain.Product) bool {
	if candidate.Stock != current.Stock {
		return candidate.Stock > current.Stock
	}
	if candidate.Name != current.Name {
		return candidate.Name < current.Name
	}
	return candidate.ID < current.ID
}
