package inventory

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/shared"
)

// Location is a named storage place with a finite volume capacity.
// It carries the volume ledger for everything stored in it:
//
//	0 <= RemainingVolume <= Volume
//	UsedVolume() == Volume - RemainingVolume == Σ product.Volume * record.Quantity
type Location struct {
	shared.TenantAggregateRoot
	Name            string `gorm:"type:varchar(100);not null"`
	NameKey         string `gorm:"type:varchar(100);not null;index"`
	Description     string `gorm:"type:text"`
	Volume          int    `gorm:"not null;default:0"`
	RemainingVolume int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "locations"
}

// NewLocation creates an empty location with the given capacity
func NewLocation(tenantID uuid.UUID, name, description string, volume int) (*Location, error) {
	if err := validateLocationName(name); err != nil {
		return nil, err
	}
	if err := validateLocationVolume(volume); err != nil {
		return nil, err
	}

	name = shared.NormalizeName(name)
	return &Location{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		NameKey:             shared.NameKey(name),
		Description:         description,
		Volume:              volume,
		RemainingVolume:     volume,
	}, nil
}

// Update changes the descriptive fields
func (l *Location) Update(name, description string) error {
	if err := validateLocationName(name); err != nil {
		return err
	}
	l.Name = shared.NormalizeName(name)
	l.NameKey = shared.NameKey(l.Name)
	l.Description = description
	l.touch()
	return nil
}

// UsedVolume returns the occupied volume
func (l *Location) UsedVolume() int {
	return l.Volume - l.RemainingVolume
}

// CanHold reports whether volume more units of space are free
func (l *Location) CanHold(volume int) bool {
	return volume <= l.RemainingVolume
}

// Occupy reserves volume for incoming stock
func (l *Location) Occupy(volume int) error {
	if volume < 0 {
		return shared.NewDomainError("INVALID_VOLUME", "Volume to occupy cannot be negative")
	}
	if !l.CanHold(volume) {
		return shared.ErrCapacityExceeded
	}
	if volume == 0 {
		return nil
	}
	l.RemainingVolume -= volume
	l.touch()
	return nil
}

// Release frees volume of outgoing stock. The ledger never grows past the
// declared capacity, so over-release is clamped.
func (l *Location) Release(volume int) error {
	if volume < 0 {
		return shared.NewDomainError("INVALID_VOLUME", "Volume to release cannot be negative")
	}
	if volume == 0 {
		return nil
	}
	l.RemainingVolume += volume
	if l.RemainingVolume > l.Volume {
		l.RemainingVolume = l.Volume
	}
	l.touch()
	return nil
}

// Resize changes the capacity while keeping the occupied volume
func (l *Location) Resize(volume int) error {
	if err := validateLocationVolume(volume); err != nil {
		return err
	}
	used := l.UsedVolume()
	if volume < used {
		return shared.NewDomainError(shared.CodeCapacityExceeded,
			fmt.Sprintf("Location volume cannot be smaller than the %d units already in use", used))
	}
	l.Volume = volume
	l.RemainingVolume = volume - used
	l.touch()
	return nil
}

// Recalculate resets the ledger from a freshly computed used volume.
// It returns false when the stored stock no longer fits, in which case the
// remaining volume is pinned to zero.
func (l *Location) Recalculate(used int) bool {
	fits := used <= l.Volume
	switch {
	case used < 0:
		l.RemainingVolume = l.Volume
	case !fits:
		l.RemainingVolume = 0
	default:
		l.RemainingVolume = l.Volume - used
	}
	l.touch()
	return fits
}

// touch only refreshes the timestamp; the repository bumps Version when the
// optimistic-lock update succeeds.
func (l *Location) touch() {
	l.Touch()
}

func validateLocationName(name string) error {
	name = shared.NormalizeName(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Location name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Location name cannot exceed 100 characters")
	}
	return nil
}

func validateLocationVolume(volume int) error {
	if volume < 0 {
		return shared.NewDomainError("INVALID_VOLUME", "Location volume cannot be negative")
	}
	if volume > shared.MaxStoredInt {
		return shared.NewDomainError("INVALID_VOLUME", fmt.Sprintf("Location volume cannot exceed %d", shared.MaxStoredInt))
	}
	return nil
}
