package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dockflow-backend/internal/model"
	"dockflow-backend/internal/yard"
)

// Store persists and restores the yard registry as a whole. The registry is
// small enough that whole-snapshot writes are cheaper than per-entity diffs,
// and they keep restart semantics trivial.
type Store interface {
	LoadSnapshot(ctx context.Context) (*yard.Snapshot, error)
	SaveSnapshot(ctx context.Context, snap *yard.Snapshot) error
	DB() *gorm.DB
}

type gormStore struct {
	db *gorm.DB
}

// New creates a Store backed by the given database.
func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// LoadSnapshot reads the whole registry. Vehicle, supplier and shift order
// is restored from the persisted Position columns.
func (s *gormStore) LoadSnapshot(ctx context.Context) (*yard.Snapshot, error) {
	snap := yard.NewSnapshot()
	db := s.db.WithContext(ctx)

	var vehicles []model.Vehicle
	if err := db.Order("position asc").Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("load vehicles: %w", err)
	}
	for i := range vehicles {
		snap.Vehicles = append(snap.Vehicles, vehicleToDomain(&vehicles[i]))
	}

	var suppliers []model.Supplier
	if err := db.Order("position asc").Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("load suppliers: %w", err)
	}
	for _, sup := range suppliers {
		snap.Suppliers = append(snap.Suppliers, yard.Supplier{ID: sup.ID, Name: sup.Name})
	}

	var shifts []model.Shift
	if err := db.Order("position asc").Find(&shifts).Error; err != nil {
		return nil, fmt.Errorf("load shifts: %w", err)
	}
	for _, sh := range shifts {
		snap.Shifts = append(snap.Shifts, yard.Shift{
			ID:        sh.ID,
			Name:      sh.Name,
			StartTime: sh.StartTime,
			EndTime:   sh.EndTime,
		})
	}

	var texts []model.StatusText
	if err := db.Find(&texts).Error; err != nil {
		return nil, fmt.Errorf("load status texts: %w", err)
	}
	for _, t := range texts {
		snap.StatusTexts[yard.Status(t.Status)] = t.Label
	}

	var docks []model.MaintenanceDock
	if err := db.Order("dock_id asc").Find(&docks).Error; err != nil {
		return nil, fmt.Errorf("load maintenance docks: %w", err)
	}
	for _, d := range docks {
		snap.MaintenanceDocks = append(snap.MaintenanceDocks, d.DockID)
	}

	return snap, nil
}

// SaveSnapshot replaces the persisted registry with the given one in a
// single transaction.
func (s *gormStore) SaveSnapshot(ctx context.Context, snap *yard.Snapshot) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&model.Vehicle{}, &model.Supplier{}, &model.Shift{},
			&model.StatusText{}, &model.MaintenanceDock{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return fmt.Errorf("clear table: %w", err)
			}
		}

		if len(snap.Vehicles) > 0 {
			records := make([]model.Vehicle, len(snap.Vehicles))
			for i, v := range snap.Vehicles {
				records[i] = vehicleToRecord(v, i)
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&records).Error; err != nil {
				return fmt.Errorf("save vehicles: %w", err)
			}
		}

		if len(snap.Suppliers) > 0 {
			records := make([]model.Supplier, len(snap.Suppliers))
			for i, sup := range snap.Suppliers {
				records[i] = model.Supplier{ID: sup.ID, Position: i, Name: sup.Name}
			}
			if err := tx.Create(&records).Error; err != nil {
				return fmt.Errorf("save suppliers: %w", err)
			}
		}

		if len(snap.Shifts) > 0 {
			records := make([]model.Shift, len(snap.Shifts))
			for i, sh := range snap.Shifts {
				records[i] = model.Shift{
					ID:        sh.ID,
					Position:  i,
					Name:      sh.Name,
					StartTime: sh.StartTime,
					EndTime:   sh.EndTime,
				}
			}
			if err := tx.Create(&records).Error; err != nil {
				return fmt.Errorf("save shifts: %w", err)
			}
		}

		if len(snap.StatusTexts) > 0 {
			records := make([]model.StatusText, 0, len(snap.StatusTexts))
			for _, status := range yard.AllStatuses() {
				if label, ok := snap.StatusTexts[status]; ok {
					records = append(records, model.StatusText{Status: string(status), Label: label})
				}
			}
			if err := tx.Create(&records).Error; err != nil {
				return fmt.Errorf("save status texts: %w", err)
			}
		}

		if len(snap.MaintenanceDocks) > 0 {
			records := make([]model.MaintenanceDock, len(snap.MaintenanceDocks))
			for i, id := range snap.MaintenanceDocks {
				records[i] = model.MaintenanceDock{DockID: id}
			}
			if err := tx.Create(&records).Error; err != nil {
				return fmt.Errorf("save maintenance docks: %w", err)
			}
		}

		return nil
	})
}

func vehicleToRecord(v *yard.Vehicle, position int) model.Vehicle {
	return model.Vehicle{
		ID:                    v.ID,
		Position:              position,
		RegistrationNumber:    v.RegistrationNumber,
		SupplierID:            v.SupplierID,
		ASN:                   v.ASN,
		Status:                string(v.Status),
		Arrival:               v.Timestamps.Arrival,
		CalledIn:              v.Timestamps.CalledIn,
		UnloadingStart:        v.Timestamps.UnloadingStart,
		UnloadingEnd:          v.Timestamps.UnloadingEnd,
		Departed:              v.Timestamps.Departed,
		AssignedDock:          v.AssignedDock,
		DriverName:            v.DriverName,
		LoadmenCount:          v.LoadmenCount,
		CleaningCrewAvailable: v.CleaningCrewAvailable,
		DelayRemarks:          v.DelayRemarks,
	}
}

func vehicleToDomain(r *model.Vehicle) *yard.Vehicle {
	return &yard.Vehicle{
		ID:                 r.ID,
		RegistrationNumber: r.RegistrationNumber,
		SupplierID:         r.SupplierID,
		ASN:                r.ASN,
		Status:             yard.Status(r.Status),
		Timestamps: yard.Timestamps{
			Arrival:        r.Arrival,
			CalledIn:       r.CalledIn,
			UnloadingStart: r.UnloadingStart,
			UnloadingEnd:   r.UnloadingEnd,
			Departed:       r.Departed,
		},
		AssignedDock:          r.AssignedDock,
		DriverName:            r.DriverName,
		LoadmenCount:          r.LoadmenCount,
		CleaningCrewAvailable: r.CleaningCrewAvailable,
		DelayRemarks:          r.DelayRemarks,
	}
}
