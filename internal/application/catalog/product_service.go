package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/catalog"
	"github.com/retail-inventory/backend/internal/domain/shared"
)

// StockCounter reports how many inventory records reference a product
type StockCounter interface {
	CountByProduct(ctx context.Context, tenantID, productID uuid.UUID) (int64, error)
}

// ProductService handles product-related business operations
type ProductService struct {
	txScope            TransactionScope
	productRepo        catalog.ProductRepository
	classificationRepo catalog.ClassificationRepository
}

// NewProductService creates a new ProductService
func NewProductService(txScope TransactionScope, productRepo catalog.ProductRepository, classificationRepo catalog.ClassificationRepository) *ProductService {
	return &ProductService{
		txScope:            txScope,
		productRepo:        productRepo,
		classificationRepo: classificationRepo,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(tenantID, req.Code, req.Name, req.Price, req.Volume)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueCode(ctx, tenantID, product.Code, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.checkClassifications(ctx, tenantID, req.CategoryID, req.BrandID, req.TypeID); err != nil {
		return nil, err
	}

	product.Description = req.Description
	product.Classify(req.CategoryID, req.BrandID, req.TypeID)
	product.SetCreatedBy(req.OperatorID)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.BrandID != nil {
		domainFilter.Filters["brand_id"] = *filter.BrandID
	}
	if filter.TypeID != nil {
		domainFilter.Filters["type_id"] = *filter.TypeID
	}
	if domainFilter.OrderBy == "" {
		domainFilter.OrderBy = "created_at"
		domainFilter.OrderDir = "desc"
	}
	domainFilter.Normalize()

	products, err := s.productRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses, total, nil
}

// Update updates a product. The per-unit volume can only change while no
// stock of the product is held, since location ledgers are built from it.
// The stock check and the save share one transaction with the product row
// locked.
func (s *ProductService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	var product *catalog.Product
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		product, err = repos.ProductRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}

		if req.Code != nil {
			if err := product.UpdateCode(*req.Code); err != nil {
				return err
			}
			if err := s.ensureUniqueCode(ctx, tenantID, product.Code, product.ID); err != nil {
				return err
			}
		}

		name, description, price := product.Name, product.Description, product.Price
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if req.Price != nil {
			price = *req.Price
		}
		if err := product.Update(name, description, price); err != nil {
			return err
		}

		if req.Volume != nil && *req.Volume != product.Volume {
			held, err := repos.StockCounter().CountByProduct(ctx, tenantID, product.ID)
			if err != nil {
				return err
			}
			if held > 0 {
				return shared.NewDomainError(shared.CodeInvalidState, "Product volume cannot change while the product is in stock")
			}
			if err := product.SetVolume(*req.Volume); err != nil {
				return err
			}
		}

		if req.CategoryID != nil || req.BrandID != nil || req.TypeID != nil {
			categoryID, brandID, typeID := pick(req.CategoryID, product.CategoryID), pick(req.BrandID, product.BrandID), pick(req.TypeID, product.TypeID)
			if err := s.checkClassifications(ctx, tenantID, categoryID, brandID, typeID); err != nil {
				return err
			}
			product.Classify(categoryID, brandID, typeID)
		}

		return repos.ProductRepo().Save(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product that no inventory record references
func (s *ProductService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, id); err != nil {
			return err
		}
		held, err := repos.StockCounter().CountByProduct(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if held > 0 {
			return shared.NewDomainError(shared.CodeInvalidState, "Product still has inventory records")
		}
		return repos.ProductRepo().Delete(ctx, tenantID, id)
	})
}

func (s *ProductService) ensureUniqueCode(ctx context.Context, tenantID uuid.UUID, code string, excludeID uuid.UUID) error {
	exists, err := s.productRepo.ExistsByCode(ctx, tenantID, code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Product code already exists")
	}
	return nil
}

// checkClassifications verifies that every referenced classification exists
// in the tenant with the matching kind
func (s *ProductService) checkClassifications(ctx context.Context, tenantID uuid.UUID, categoryID, brandID, typeID *uuid.UUID) error {
	refs := []struct {
		kind catalog.ClassificationKind
		id   *uuid.UUID
	}{
		{catalog.KindCategory, categoryID},
		{catalog.KindBrand, brandID},
		{catalog.KindType, typeID},
	}
	for _, ref := range refs {
		if ref.id == nil || *ref.id == uuid.Nil {
			continue
		}
		if _, err := s.classificationRepo.FindByIDForTenant(ctx, tenantID, ref.kind, *ref.id); err != nil {
			if shared.IsNotFound(err) {
				return shared.NewValidationError(ref.kind.Label() + " not found")
			}
			return err
		}
	}
	return nil
}

// pick returns the requested reference, falling back to the current one.
// A request carrying uuid.Nil clears the reference.
func pick(requested, current *uuid.UUID) *uuid.UUID {
	if requested == nil {
		return current
	}
	return requested
}
