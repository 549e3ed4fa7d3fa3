package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotForSale   = errors.New("pet is not for sale")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// ListFilter son los filtros del listado público.
type ListFilter struct {
	CategoryID int64
	Search     string
	Ordering   string // price, -price, name, -name
}

// ListForSale devuelve sólo mascotas disponibles y con stock.
func (s *Service) ListForSale(ctx context.Context, f ListFilter) ([]Pet, error) {
	all, err := s.repo.ListPets(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]Pet, 0, len(all))
	for _, p := range all {
		if !p.IsForSale() {
			continue
		}
		if f.CategoryID != 0 && p.CategoryID != f.CategoryID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p)
	}

	sortPets(out, f.Ordering)
	return out, nil
}

func sortPets(pets []Pet, ordering string) {
	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")

	less := func(i, j int) bool { return pets[i].ID < pets[j].ID }
	switch field {
	case "price":
		less = func(i, j int) bool { return pets[i].Price < pets[j].Price }
	case "name":
		less = func(i, j int) bool { return strings.ToLower(pets[i].Name) < strings.ToLower(pets[j].Name) }
	}

	sort.SliceStable(pets, func(i, j int) bool {
		if desc {
			return less(j, i)
		}
		return less(i, j)
	})
}

func (s *Service) GetPet(ctx context.Context, id int64) (Pet, error) {
	return s.repo.GetPet(ctx, id)
}

func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

// CategoryNames indexa nombres de categoría por ID (para listados).
func (s *Service) CategoryNames(ctx context.Context) (map[int64]string, error) {
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]string, len(cats))
	for _, c := range cats {
		out[c.ID] = c.Name
	}
	return out, nil
}

type CreatePetInput struct {
	CategoryID    int64
	Name          string
	Description   string
	Price         float64
	Gender        Gender
	ImageURL      string
	StockQuantity int
}

func (s *Service) CreateCategory(ctx context.Context, name, description string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrInvalidInput
	}
	return s.repo.CreateCategory(ctx, Category{
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   s.now(),
	})
}

func (s *Service) CreatePet(ctx context.Context, in CreatePetInput) (Pet, error) {
	if strings.TrimSpace(in.Name) == "" || in.CategoryID == 0 || in.Price < 0 || in.StockQuantity < 0 {
		return Pet{}, ErrInvalidInput
	}
	if in.Gender != GenderMale && in.Gender != GenderFemale {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	return s.repo.CreatePet(ctx, Pet{
		CategoryID:        in.CategoryID,
		Name:              strings.TrimSpace(in.Name),
		Description:       strings.TrimSpace(in.Description),
		Price:             in.Price,
		Gender:            in.Gender,
		ImageURL:          strings.TrimSpace(in.ImageURL),
		IsAvailable:       true,
		StockQuantity:     in.StockQuantity,
		MinStockThreshold: 1,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
}

// ReserveStock descuenta qty si la mascota está a la venta y alcanza el stock.
func (s *Service) ReserveStock(ctx context.Context, petID int64, qty int) (Pet, error) {
	if qty <= 0 {
		return Pet{}, ErrInvalidInput
	}
	p, err := s.repo.GetPet(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if !p.IsAvailable {
		return Pet{}, ErrNotForSale
	}
	return s.repo.AdjustStock(ctx, petID, -qty)
}

// ReleaseStock devuelve qty al stock (p.ej. al cancelar una orden).
func (s *Service) ReleaseStock(ctx context.Context, petID int64, qty int) error {
	if qty <= 0 {
		return ErrInvalidInput
	}
	_, err := s.repo.AdjustStock(ctx, petID, qty)
	return err
}
