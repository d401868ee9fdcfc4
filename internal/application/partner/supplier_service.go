package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/partner"
	"github.com/retail-inventory/backend/internal/domain/shared"
)

// SupplierUsage reports how many inventory records reference a supplier
type SupplierUsage interface {
	CountBySupplier(ctx context.Context, tenantID, supplierID uuid.UUID) (int64, error)
}

// SupplierService handles supplier-related business operations
type SupplierService struct {
	repo  partner.SupplierRepository
	usage SupplierUsage
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(repo partner.SupplierRepository, usage SupplierUsage) *SupplierService {
	return &SupplierService{repo: repo, usage: usage}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueCode(ctx, tenantID, supplier.Code, uuid.Nil); err != nil {
		return nil, err
	}
	if err := supplier.SetContact(req.ContactName, req.Phone, req.Email, req.Address); err != nil {
		return nil, err
	}
	supplier.SetCreatedBy(req.OperatorID)

	if err := s.repo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// List retrieves suppliers with filtering and pagination
func (s *SupplierService) List(ctx context.Context, tenantID uuid.UUID, filter SupplierListFilter) ([]SupplierResponse, int64, error) {
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

	suppliers, err := s.repo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = ToSupplierResponse(&suppliers[i])
	}
	return responses, total, nil
}

// Update updates a supplier
func (s *SupplierService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.repo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		if err := supplier.UpdateCode(*req.Code); err != nil {
			return nil, err
		}
		if err := s.ensureUniqueCode(ctx, tenantID, supplier.Code, supplier.ID); err != nil {
			return nil, err
		}
	}
	if req.Name != nil {
		if err := supplier.Update(*req.Name); err != nil {
			return nil, err
		}
	}

	contact, phone, email, address := supplier.ContactName, supplier.Phone, supplier.Email, supplier.Address
	if req.ContactName != nil {
		contact = *req.ContactName
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Address != nil {
		address = *req.Address
	}
	if err := supplier.SetContact(contact, phone, email, address); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	resp := ToSupplierResponse(supplier)
	return &resp, nil
}

// Delete removes a supplier no inventory record references
func (s *SupplierService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.repo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	count, err := s.usage.CountBySupplier(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError(shared.CodeInvalidState, "Supplier is still referenced by inventory records")
	}
	return s.repo.Delete(ctx, tenantID, id)
}

func (s *SupplierService) ensureUniqueCode(ctx context.Context, tenantID uuid.UUID, code string, excludeID uuid.UUID) error {
	exists, err := s.repo.ExistsByCode(ctx, tenantID, code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Supplier code already exists")
	}
	return nil
}
