package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/catalog"
	"github.com/retail-inventory/backend/internal/domain/shared"
)

// ClassificationService manages brands, categories and product types
type ClassificationService struct {
	repo        catalog.ClassificationRepository
	productRepo catalog.ProductRepository
}

// NewClassificationService creates a new ClassificationService
func NewClassificationService(repo catalog.ClassificationRepository, productRepo catalog.ProductRepository) *ClassificationService {
	return &ClassificationService{repo: repo, productRepo: productRepo}
}

// Create creates a classification of the given kind
func (s *ClassificationService) Create(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, req ClassificationRequest) (*ClassificationResponse, error) {
	c, err := catalog.NewClassification(tenantID, kind, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, tenantID, kind, c.NameKey, uuid.Nil); err != nil {
		return nil, err
	}
	c.SetCreatedBy(req.OperatorID)

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToClassificationResponse(c)
	return &resp, nil
}

// GetByID retrieves a classification
func (s *ClassificationService) GetByID(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, id uuid.UUID) (*ClassificationResponse, error) {
	c, err := s.repo.FindByIDForTenant(ctx, tenantID, kind, id)
	if err != nil {
		return nil, err
	}
	resp := ToClassificationResponse(c)
	return &resp, nil
}

// List retrieves classifications of one kind
func (s *ClassificationService) List(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, filter ClassificationListFilter) ([]ClassificationResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}
	if domainFilter.OrderBy == "" {
		domainFilter.OrderBy = "name"
		domainFilter.OrderDir = "asc"
	}
	domainFilter.Normalize()

	items, err := s.repo.FindAllForTenant(ctx, tenantID, kind, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, kind, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ClassificationResponse, len(items))
	for i := range items {
		responses[i] = ToClassificationResponse(&items[i])
	}
	return responses, total, nil
}

// Update renames a classification
func (s *ClassificationService) Update(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, id uuid.UUID, req ClassificationRequest) (*ClassificationResponse, error) {
	c, err := s.repo.FindByIDForTenant(ctx, tenantID, kind, id)
	if err != nil {
		return nil, err
	}
	if err := c.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, tenantID, kind, c.NameKey, c.ID); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := ToClassificationResponse(c)
	return &resp, nil
}

// Delete removes a classification no product references
func (s *ClassificationService) Delete(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, id uuid.UUID) error {
	if _, err := s.repo.FindByIDForTenant(ctx, tenantID, kind, id); err != nil {
		return err
	}
	count, err := s.productRepo.CountByClassification(ctx, tenantID, kind, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError(shared.CodeInvalidState, kind.Label()+" is still assigned to products")
	}
	return s.repo.Delete(ctx, tenantID, kind, id)
}

func (s *ClassificationService) ensureUniqueName(ctx context.Context, tenantID uuid.UUID, kind catalog.ClassificationKind, nameKey string, excludeID uuid.UUID) error {
	exists, err := s.repo.ExistsByName(ctx, tenantID, kind, nameKey, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, kind.Label()+" name already exists")
	}
	return nil
}
