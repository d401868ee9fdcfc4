package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/inventory"
	"github.com/retail-inventory/backend/internal/domain/shared"
)

// LocationService manages storage locations and their volume ledger
type LocationService struct {
	txScope      TransactionScope
	locationRepo inventory.LocationRepository
	recordRepo   inventory.InventoryRecordRepository
}

// NewLocationService creates a new LocationService
func NewLocationService(txScope TransactionScope, locationRepo inventory.LocationRepository, recordRepo inventory.InventoryRecordRepository) *LocationService {
	return &LocationService{
		txScope:      txScope,
		locationRepo: locationRepo,
		recordRepo:   recordRepo,
	}
}

// Create creates a new, empty location
func (s *LocationService) Create(ctx context.Context, tenantID uuid.UUID, req CreateLocationRequest) (*LocationResponse, error) {
	location, err := inventory.NewLocation(tenantID, req.Name, req.Description, req.Volume)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, tenantID, location.NameKey, uuid.Nil); err != nil {
		return nil, err
	}
	location.SetCreatedBy(req.OperatorID)

	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	resp := ToLocationResponse(location)
	return &resp, nil
}

// GetByID retrieves a location by ID
func (s *LocationService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToLocationResponse(location)
	return &resp, nil
}

// List retrieves locations with filtering and pagination
func (s *LocationService) List(ctx context.Context, tenantID uuid.UUID, filter LocationListFilter) ([]LocationResponse, int64, error) {
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

	locations, err := s.locationRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.locationRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]LocationResponse, len(locations))
	for i := range locations {
		responses[i] = ToLocationResponse(&locations[i])
	}
	return responses, total, nil
}

// Update renames a location and/or resizes its capacity. Shrinking below the
// volume already in use is rejected.
func (s *LocationService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateLocationRequest) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name, description := location.Name, location.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := location.Update(name, description); err != nil {
			return nil, err
		}
		if err := s.ensureUniqueName(ctx, tenantID, location.NameKey, location.ID); err != nil {
			return nil, err
		}
	}
	if req.Volume != nil {
		if err := location.Resize(*req.Volume); err != nil {
			return nil, err
		}
	}

	if err := s.locationRepo.SaveWithLock(ctx, location); err != nil {
		return nil, err
	}
	resp := ToLocationResponse(location)
	return &resp, nil
}

// Delete removes a location that holds no inventory records
func (s *LocationService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.locationRepo.FindByIDForTenant(ctx, tenantID, id); err != nil {
		return err
	}
	count, err := s.recordRepo.CountByLocation(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError(shared.CodeInvalidState, "Location still holds inventory records")
	}
	return s.locationRepo.Delete(ctx, tenantID, id)
}

// Recalculate rebuilds the location's remaining volume from the records
// stored at it. Overcommitted is set when the stored stock exceeds capacity.
func (s *LocationService) Recalculate(ctx context.Context, tenantID, id uuid.UUID) (*RecalculateResponse, error) {
	var (
		location *inventory.Location
		previous int
		fits     bool
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		location, err = repos.LocationRepo().FindByIDForTenant(ctx, tenantID, id)
		if err != nil {
			return err
		}
		used, err := repos.RecordRepo().UsedVolume(ctx, tenantID, id)
		if err != nil {
			return err
		}
		previous = location.RemainingVolume
		fits = location.Recalculate(used)
		return repos.LocationRepo().SaveWithLock(ctx, location)
	})
	if err != nil {
		return nil, err
	}

	return &RecalculateResponse{
		Location:       ToLocationResponse(location),
		PreviousRemain: previous,
		Overcommitted:  !fits,
	}, nil
}

func (s *LocationService) ensureUniqueName(ctx context.Context, tenantID uuid.UUID, nameKey string, excludeID uuid.UUID) error {
	exists, err := s.locationRepo.ExistsByName(ctx, tenantID, nameKey, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "A location with this name already exists")
	}
	return nil
}
