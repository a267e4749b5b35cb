package catalog

import "strings"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]Product, error) {
	return s.repo.List()
}

func (s *Service) ListByCategory(category string) ([]Product, error) {
	return s.repo.ListByCategory(category)
}

func (s *Service) ListByCategoryAndSubcategory(category, subcategory string) ([]Product, error) {
	return s.repo.ListByCategoryAndSubcategory(category, subcategory)
}

func (s *Service) GetByID(id int64) (Product, error) {
	return s.repo.GetByID(id)
}

// Search filters the full catalog linearly with diacritic- and
// case-insensitive matching over name, descriptions and subcategory. An
// empty or whitespace-only term returns no results.
func (s *Service) Search(term string) ([]Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []Product{}, nil
	}
	all, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	folded := fold(term)
	out := make([]Product, 0)
	for _, p := range all {
		if matchesTerm(p, folded) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) Categories() ([]string, error) {
	return s.repo.Categories()
}

func (s *Service) Subcategories(category string) ([]string, error) {
	return s.repo.Subcategories(category)
}

func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(p)
}

func (s *Service) Update(id int64, p Product) (Product, error) {
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int64) error {
	return s.repo.Delete(id)
}

// ReplaceAll swaps the whole catalog (bulk import).
func (s *Service) ReplaceAll(products []Product) error {
	return s.repo.ReplaceAll(products)
}
