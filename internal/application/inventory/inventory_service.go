package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/catalog"
	"github.com/retail-inventory/backend/internal/domain/inventory"
	"github.com/retail-inventory/backend/internal/domain/partner"
	"github.com/retail-inventory/backend/internal/domain/shared"
)

// InventoryService handles inventory records and the stock operations on them
type InventoryService struct {
	txScope        TransactionScope
	recordRepo     inventory.InventoryRecordRepository
	locationRepo   inventory.LocationRepository
	movementRepo   inventory.MovementRepository
	productRepo    catalog.ProductRepository
	supplierRepo   partner.SupplierRepository
	ledger         *inventory.StockLedger
	eventPublisher shared.EventPublisher
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	txScope TransactionScope,
	recordRepo inventory.InventoryRecordRepository,
	locationRepo inventory.LocationRepository,
	movementRepo inventory.MovementRepository,
	productRepo catalog.ProductRepository,
	supplierRepo partner.SupplierRepository,
) *InventoryService {
	return &InventoryService{
		txScope:      txScope,
		recordRepo:   recordRepo,
		locationRepo: locationRepo,
		movementRepo: movementRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		ledger:       inventory.NewStockLedger(),
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *InventoryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvents publishes events once the transaction that produced them committed
func (s *InventoryService) publishEvents(ctx context.Context, records ...*inventory.InventoryRecord) {
	var events []shared.DomainEvent
	for _, r := range records {
		if r == nil {
			continue
		}
		events = append(events, r.GetDomainEvents()...)
		r.ClearDomainEvents()
	}
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	// Errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
}

// GetByID retrieves an inventory record by ID
func (s *InventoryService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*RecordResponse, error) {
	record, err := s.recordRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	product, _ := s.productRepo.FindByIDForTenant(ctx, tenantID, record.ProductID)
	location, _ := s.locationRepo.FindByIDForTenant(ctx, tenantID, record.LocationID)
	resp := ToRecordResponse(record, product, location)
	return &resp, nil
}

// List retrieves inventory records with filtering and pagination
func (s *InventoryService) List(ctx context.Context, tenantID uuid.UUID, filter RecordListFilter) ([]RecordResponse, int64, error) {
	domainFilter := inventory.RecordFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
		LocationID: filter.LocationID,
		CategoryID: filter.CategoryID,
		ProductID:  filter.ProductID,
	}
	if domainFilter.OrderBy == "" {
		domainFilter.OrderBy = "updated_at"
	}
	if domainFilter.OrderDir == "" {
		domainFilter.OrderDir = "desc"
	}
	domainFilter.Normalize()

	records, err := s.recordRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.recordRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	products, locations, err := s.lookups(ctx, tenantID, records)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]RecordResponse, len(records))
	for i := range records {
		r := &records[i]
		responses[i] = ToRecordResponse(r, products[r.ProductID], locations[r.LocationID])
	}
	return responses, total, nil
}

func (s *InventoryService) lookups(ctx context.Context, tenantID uuid.UUID, records []inventory.InventoryRecord) (map[uuid.UUID]*catalog.Product, map[uuid.UUID]*inventory.Location, error) {
	products := make(map[uuid.UUID]*catalog.Product)
	locations := make(map[uuid.UUID]*inventory.Location)
	if len(records) == 0 {
		return products, locations, nil
	}

	productIDs := make([]uuid.UUID, 0, len(records))
	locationIDs := make([]uuid.UUID, 0, len(records))
	for _, r := range records {
		productIDs = append(productIDs, r.ProductID)
		locationIDs = append(locationIDs, r.LocationID)
	}

	ps, err := s.productRepo.FindByIDs(ctx, tenantID, productIDs)
	if err != nil {
		return nil, nil, err
	}
	for i := range ps {
		products[ps[i].ID] = &ps[i]
	}
	ls, err := s.locationRepo.FindByIDs(ctx, tenantID, locationIDs)
	if err != nil {
		return nil, nil, err
	}
	for i := range ls {
		locations[ls[i].ID] = &ls[i]
	}
	return products, locations, nil
}

// Create books quantity units of a product at a location. When a record for
// the product already exists there the units are merged into it; either way
// exactly one stock-in movement is written.
func (s *InventoryService) Create(ctx context.Context, tenantID uuid.UUID, req CreateRecordRequest) (*RecordResponse, error) {
	if req.SupplierID != nil && *req.SupplierID != uuid.Nil {
		if _, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, *req.SupplierID); err != nil {
			return nil, referenceError(err, "Supplier not found")
		}
	}

	var (
		record   *inventory.InventoryRecord
		product  *catalog.Product
		location *inventory.Location
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		product, err = repos.ProductRepo().FindByIDForTenant(ctx, tenantID, req.ProductID)
		if err != nil {
			return referenceError(err, "Product not found")
		}
		location, err = repos.LocationRepo().FindByIDForTenant(ctx, tenantID, req.LocationID)
		if err != nil {
			return referenceError(err, "Location not found")
		}

		record, err = repos.RecordRepo().FindByProductAndLocation(ctx, tenantID, req.ProductID, req.LocationID)
		created := false
		switch {
		case shared.IsNotFound(err):
			record, err = inventory.NewInventoryRecord(tenantID, req.ProductID, req.LocationID, req.SupplierID, 0)
			if err != nil {
				return err
			}
			record.SetCreatedBy(req.OperatorID)
			created = true
		case err != nil:
			return err
		}

		return s.stockIn(ctx, repos, record, location, product, req.Quantity, req.OperatorID, created)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, record)
	resp := ToRecordResponse(record, product, location)
	return &resp, nil
}

// stockIn applies a receipt and persists record, location and movement
func (s *InventoryService) stockIn(
	ctx context.Context,
	repos TransactionalRepositories,
	record *inventory.InventoryRecord,
	location *inventory.Location,
	product *catalog.Product,
	quantity int,
	operatorID uuid.UUID,
	created bool,
) error {
	movement, err := s.ledger.StockIn(record, location, product.Volume, quantity)
	if err != nil {
		return err
	}
	movement.WithActor(operatorID)

	if created {
		err = repos.RecordRepo().Create(ctx, record)
	} else {
		err = repos.RecordRepo().SaveWithLock(ctx, record)
	}
	if err != nil {
		return err
	}
	if err := repos.LocationRepo().SaveWithLock(ctx, location); err != nil {
		return err
	}
	return repos.MovementRepo().Create(ctx, movement)
}

// StockIn receives stock into an existing record, or into the product's
// record at another location when req.LocationID points elsewhere.
func (s *InventoryService) StockIn(ctx context.Context, tenantID, recordID uuid.UUID, req StockInRequest) (*RecordResponse, error) {
	var (
		record   *inventory.InventoryRecord
		product  *catalog.Product
		location *inventory.Location
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		record, err = repos.RecordRepo().FindByIDForTenant(ctx, tenantID, recordID)
		if err != nil {
			return err
		}
		product, err = repos.ProductRepo().FindByIDForTenant(ctx, tenantID, record.ProductID)
		if err != nil {
			return err
		}

		locationID := record.LocationID
		if req.LocationID != nil && *req.LocationID != uuid.Nil {
			locationID = *req.LocationID
		}
		location, err = repos.LocationRepo().FindByIDForTenant(ctx, tenantID, locationID)
		if err != nil {
			return referenceError(err, "Location not found")
		}

		created := false
		if locationID != record.LocationID {
			target, err := repos.RecordRepo().FindByProductAndLocation(ctx, tenantID, record.ProductID, locationID)
			switch {
			case shared.IsNotFound(err):
				target, err = inventory.NewInventoryRecord(tenantID, record.ProductID, locationID, record.SupplierID, 0)
				if err != nil {
					return err
				}
				target.SetCreatedBy(req.OperatorID)
				created = true
			case err != nil:
				return err
			}
			record = target
		}

		return s.stockIn(ctx, repos, record, location, product, req.Quantity, req.OperatorID, created)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, record)
	resp := ToRecordResponse(record, product, location)
	return &resp, nil
}

// StockOut ships stock out of a record. The record stays at zero when emptied.
func (s *InventoryService) StockOut(ctx context.Context, tenantID, recordID uuid.UUID, req StockOutRequest) (*RecordResponse, error) {
	var (
		record   *inventory.InventoryRecord
		product  *catalog.Product
		location *inventory.Location
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		record, err = repos.RecordRepo().FindByIDForTenant(ctx, tenantID, recordID)
		if err != nil {
			return err
		}
		product, err = repos.ProductRepo().FindByIDForTenant(ctx, tenantID, record.ProductID)
		if err != nil {
			return err
		}
		location, err = repos.LocationRepo().FindByIDForTenant(ctx, tenantID, record.LocationID)
		if err != nil {
			return referenceError(err, "Location not found")
		}

		movement, err := s.ledger.StockOut(record, location, product.Volume, req.Quantity)
		if err != nil {
			return err
		}
		movement.WithActor(req.OperatorID)

		if err := repos.RecordRepo().SaveWithLock(ctx, record); err != nil {
			return err
		}
		if err := repos.LocationRepo().SaveWithLock(ctx, location); err != nil {
			return err
		}
		return repos.MovementRepo().Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, record)
	resp := ToRecordResponse(record, product, location)
	return &resp, nil
}

// MoveStock transfers stock from a record to another location. The whole
// operation commits or rolls back as one unit; a destination without room
// fails with CAPACITY_EXCEEDED before any row is written.
func (s *InventoryService) MoveStock(ctx context.Context, tenantID, recordID uuid.UUID, req MoveStockRequest) (*MoveStockResponse, error) {
	var (
		source  *inventory.InventoryRecord
		product *catalog.Product
		srcLoc  *inventory.Location
		dstLoc  *inventory.Location
		result  *inventory.MoveResult
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		source, err = repos.RecordRepo().FindByIDForTenant(ctx, tenantID, recordID)
		if err != nil {
			return err
		}
		product, err = repos.ProductRepo().FindByIDForTenant(ctx, tenantID, source.ProductID)
		if err != nil {
			return err
		}
		srcLoc, err = repos.LocationRepo().FindByIDForTenant(ctx, tenantID, source.LocationID)
		if err != nil {
			return referenceError(err, "Location not found")
		}
		dstLoc, err = repos.LocationRepo().FindByIDForTenant(ctx, tenantID, req.LocationID)
		if err != nil {
			return referenceError(err, "Destination location not found")
		}

		var destination *inventory.InventoryRecord
		if dstLoc.ID != srcLoc.ID {
			destination, err = repos.RecordRepo().FindByProductAndLocation(ctx, tenantID, source.ProductID, dstLoc.ID)
			if err != nil && !shared.IsNotFound(err) {
				return err
			}
		}

		result, err = s.ledger.MoveStock(inventory.MoveRequest{
			Source:              source,
			SourceLocation:      srcLoc,
			Destination:         destination,
			DestinationLocation: dstLoc,
			UnitVolume:          product.Volume,
			Quantity:            req.Quantity,
		})
		if err != nil {
			return err
		}
		result.Movement.WithActor(req.OperatorID)

		if err := repos.MovementRepo().Create(ctx, result.Movement); err != nil {
			return err
		}
		if result.DestinationCreated {
			result.Destination.SetCreatedBy(req.OperatorID)
			err = repos.RecordRepo().Create(ctx, result.Destination)
		} else {
			err = repos.RecordRepo().SaveWithLock(ctx, result.Destination)
		}
		if err != nil {
			return err
		}
		if result.SourceDeleted {
			err = repos.RecordRepo().DeleteWithLock(ctx, source)
		} else {
			err = repos.RecordRepo().SaveWithLock(ctx, source)
		}
		if err != nil {
			return err
		}
		if err := repos.LocationRepo().SaveWithLock(ctx, dstLoc); err != nil {
			return err
		}
		return repos.LocationRepo().SaveWithLock(ctx, srcLoc)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, source)

	resp := &MoveStockResponse{
		SourceDeleted: result.SourceDeleted,
		Destination:   ToRecordResponse(result.Destination, product, dstLoc),
		Movement:      ToMovementResponse(result.Movement),
	}
	if !result.SourceDeleted {
		src := ToRecordResponse(source, product, srcLoc)
		resp.Source = &src
	}
	return resp, nil
}

// Update corrects a record's quantity, location or supplier directly. The
// volume ledgers of the old and new location are adjusted; the new location
// must have room for the resulting footprint.
func (s *InventoryService) Update(ctx context.Context, tenantID, recordID uuid.UUID, req UpdateRecordRequest) (*RecordResponse, error) {
	if req.SupplierID != nil && *req.SupplierID != uuid.Nil {
		if _, err := s.supplierRepo.FindByIDForTenant(ctx, tenantID, *req.SupplierID); err != nil {
			return nil, referenceError(err, "Supplier not found")
		}
	}

	var (
		record  *inventory.InventoryRecord
		product *catalog.Product
		newLoc  *inventory.Location
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		record, err = repos.RecordRepo().FindByIDForTenant(ctx, tenantID, recordID)
		if err != nil {
			return err
		}
		product, err = repos.ProductRepo().FindByIDForTenant(ctx, tenantID, record.ProductID)
		if err != nil {
			return err
		}
		oldLoc, err := repos.LocationRepo().FindByIDForTenant(ctx, tenantID, record.LocationID)
		if err != nil {
			return referenceError(err, "Location not found")
		}

		newLoc = oldLoc
		if req.LocationID != nil && *req.LocationID != uuid.Nil && *req.LocationID != record.LocationID {
			newLoc, err = repos.LocationRepo().FindByIDForTenant(ctx, tenantID, *req.LocationID)
			if err != nil {
				return referenceError(err, "Location not found")
			}
			exists, err := repos.RecordRepo().FindByProductAndLocation(ctx, tenantID, record.ProductID, newLoc.ID)
			if err == nil && exists != nil {
				return shared.NewDomainError(shared.CodeAlreadyExists, "The product already has an inventory record at that location")
			}
			if err != nil && !shared.IsNotFound(err) {
				return err
			}
		}

		quantity := record.Quantity
		if req.Quantity != nil {
			quantity = *req.Quantity
		}

		if err := oldLoc.Release(product.Footprint(record.Quantity)); err != nil {
			return err
		}
		if err := newLoc.Occupy(product.Footprint(quantity)); err != nil {
			return err
		}
		if err := record.SetQuantity(quantity); err != nil {
			return err
		}
		if newLoc.ID != record.LocationID {
			if err := record.Relocate(newLoc.ID); err != nil {
				return err
			}
		}
		if req.SupplierID != nil {
			record.SupplierID = nonNil(req.SupplierID)
		}
		record.AddDomainEvent(inventory.NewInventoryAdjustedEvent(record, false))

		if err := repos.RecordRepo().SaveWithLock(ctx, record); err != nil {
			return err
		}
		if err := repos.LocationRepo().SaveWithLock(ctx, oldLoc); err != nil {
			return err
		}
		if newLoc.ID != oldLoc.ID {
			return repos.LocationRepo().SaveWithLock(ctx, newLoc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, record)
	resp := ToRecordResponse(record, product, newLoc)
	return &resp, nil
}

// Delete removes a record and frees its footprint at the location
func (s *InventoryService) Delete(ctx context.Context, tenantID, recordID uuid.UUID) error {
	var record *inventory.InventoryRecord
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		record, err = repos.RecordRepo().FindByIDForTenant(ctx, tenantID, recordID)
		if err != nil {
			return err
		}
		product, err := repos.ProductRepo().FindByIDForTenant(ctx, tenantID, record.ProductID)
		if err != nil {
			return err
		}
		location, err := repos.LocationRepo().FindByIDForTenant(ctx, tenantID, record.LocationID)
		if err != nil && !shared.IsNotFound(err) {
			return err
		}
		if location != nil {
			if err := location.Release(product.Footprint(record.Quantity)); err != nil {
				return err
			}
			if err := repos.LocationRepo().SaveWithLock(ctx, location); err != nil {
				return err
			}
		}
		record.AddDomainEvent(inventory.NewInventoryAdjustedEvent(record, true))
		return repos.RecordRepo().DeleteWithLock(ctx, record)
	})
	if err != nil {
		return err
	}
	s.publishEvents(ctx, record)
	return nil
}

// GetMovement retrieves one movement log entry
func (s *InventoryService) GetMovement(ctx context.Context, tenantID, id uuid.UUID) (*MovementResponse, error) {
	m, err := s.movementRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToMovementResponse(m)
	return &resp, nil
}

// ListMovements lists the movement log, newest first
func (s *InventoryService) ListMovements(ctx context.Context, tenantID uuid.UUID, filter MovementListFilter) ([]MovementResponse, int64, error) {
	domainFilter := inventory.MovementFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  "created_at",
			OrderDir: "desc",
		},
		Type:       inventory.MovementType(filter.Type),
		ProductID:  filter.ProductID,
		LocationID: filter.LocationID,
		From:       filter.From,
		To:         filter.To,
	}
	if domainFilter.Type != "" && !domainFilter.Type.IsValid() {
		return nil, 0, shared.NewValidationError("Movement type must be one of in, out, move")
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, 0, shared.NewValidationError("The 'to' date must not be before the 'from' date")
	}
	domainFilter.Normalize()

	movements, err := s.movementRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.movementRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]MovementResponse, len(movements))
	for i := range movements {
		responses[i] = ToMovementResponse(&movements[i])
	}
	return responses, total, nil
}

// referenceError turns a missing referenced row into a validation error
func referenceError(err error, message string) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewValidationError(message)
	}
	return err
}

func nonNil(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	return id
}
