package service

import (
	"context"
	"log"
	"sync"
	"time"

	"dockflow-backend/config"
	"dockflow-backend/internal/store"
	"dockflow-backend/internal/yard"
)

// Notifier receives the ids of docks that just became available. A nil
// Notifier disables dispatch.
type Notifier interface {
	DockAvailable(dockID string)
}

// Service owns the live yard registry. All mutations are serialized through
// its mutex; reads hand out deep clones so handlers never touch shared state.
type Service struct {
	mu       sync.Mutex
	cfg      *config.Config
	store    store.Store
	snap     *yard.Snapshot
	notifier Notifier

	// now is swappable in tests.
	now func() time.Time
}

// New restores the registry from the store, seeding reference data when the
// store is empty.
func New(ctx context.Context, cfg *config.Config, st store.Store, notifier Notifier) (*Service, error) {
	snap, err := st.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	svc := &Service{
		cfg:      cfg,
		store:    st,
		snap:     snap,
		notifier: notifier,
		now:      time.Now,
	}

	if len(snap.Vehicles) == 0 && len(snap.Suppliers) == 0 && len(snap.Shifts) == 0 {
		svc.seed(ctx)
	}
	return svc, nil
}

func (s *Service) seed(ctx context.Context) {
	for _, sup := range s.cfg.Seed.Suppliers {
		s.snap.Suppliers = append(s.snap.Suppliers, yard.Supplier{ID: sup.ID, Name: sup.Name})
	}
	for _, sh := range s.cfg.Seed.Shifts {
		s.snap.Shifts = append(s.snap.Shifts, yard.Shift{
			ID:        sh.ID,
			Name:      sh.Name,
			StartTime: sh.StartTime,
			EndTime:   sh.EndTime,
		})
	}
	log.Printf("Seeded %d suppliers and %d shifts", len(s.cfg.Seed.Suppliers), len(s.cfg.Seed.Shifts))
	if err := s.store.SaveSnapshot(ctx, s.snap); err != nil {
		log.Printf("Error saving seeded state: %v", err)
	}
}

// mutate applies fn to the live registry under the lock. On success the new
// state is persisted and any dock that went from occupied to available is
// announced. A persistence failure is logged but does not roll back the
// in-memory mutation; the registry stays the source of truth.
func (s *Service) mutate(ctx context.Context, fn func(snap *yard.Snapshot, now time.Time) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := availableSet(s.snap, s.cfg.Yard.TotalDocks)

	if err := fn(s.snap, s.now()); err != nil {
		return err
	}

	if err := s.store.SaveSnapshot(ctx, s.snap); err != nil {
		log.Printf("Error persisting yard state: %v", err)
	}

	if s.notifier != nil {
		for _, dockID := range yard.AvailableDocks(s.cfg.Yard.TotalDocks, s.snap.Vehicles, s.snap.MaintenanceDocks) {
			if !before[dockID] {
				s.notifier.DockAvailable(dockID)
			}
		}
	}
	return nil
}

func availableSet(snap *yard.Snapshot, totalDocks int) map[string]bool {
	set := make(map[string]bool)
	for _, id := range yard.AvailableDocks(totalDocks, snap.Vehicles, snap.MaintenanceDocks) {
		set[id] = true
	}
	return set
}

// RegisterArrival books a vehicle into the staging area.
func (s *Service) RegisterArrival(ctx context.Context, in yard.ArrivalInput) (*yard.Vehicle, error) {
	var created *yard.Vehicle
	err := s.mutate(ctx, func(snap *yard.Snapshot, now time.Time) error {
		v, err := snap.RegisterArrival(in, now)
		if err != nil {
			return err
		}
		created = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := *created
	return &out, nil
}

// CallInToDock moves a staging vehicle to Called In at the given dock.
func (s *Service) CallInToDock(ctx context.Context, vehicleID, dockID string) error {
	return s.mutate(ctx, func(snap *yard.Snapshot, now time.Time) error {
		return snap.AssignVehicleToDock(vehicleID, dockID, s.cfg.Yard.TotalDocks, now)
	})
}

// AssignResources starts unloading with the given resources.
func (s *Service) AssignResources(ctx context.Context, vehicleID string, in yard.ResourceInput) error {
	return s.mutate(ctx, func(snap *yard.Snapshot, now time.Time) error {
		return snap.AssignResources(vehicleID, in, s.cfg.Yard.TotalDocks, now)
	})
}

// CompleteUnloading closes out the unloading phase.
func (s *Service) CompleteUnloading(ctx context.Context, vehicleID string) error {
	return s.mutate(ctx, func(snap *yard.Snapshot, now time.Time) error {
		return snap.CompleteUnloading(vehicleID, now)
	})
}

// MarkDeparted records the vehicle leaving the yard and frees its dock.
func (s *Service) MarkDeparted(ctx context.Context, vehicleID string) error {
	return s.mutate(ctx, func(snap *yard.Snapshot, now time.Time) error {
		return snap.MarkDeparted(vehicleID, now)
	})
}

// SetDelayRemark replaces the vehicle's free-text delay note.
func (s *Service) SetDelayRemark(ctx context.Context, vehicleID, remarks string) error {
	return s.mutate(ctx, func(snap *yard.Snapshot, _ time.Time) error {
		return snap.AddDelayRemark(vehicleID, remarks)
	})
}

// DeleteVehicle removes a vehicle from the registry outright.
func (s *Service) DeleteVehicle(ctx context.Context, vehicleID string) error {
	return s.mutate(ctx, func(snap *yard.Snapshot, _ time.Time) error {
		return snap.DeleteVehicle(vehicleID)
	})
}

// UpsertSupplier creates or renames a supplier.
func (s *Service) UpsertSupplier(ctx context.Context, id, name string) (yard.Supplier, error) {
	var out yard.Supplier
	err := s.mutate(ctx, func(snap *yard.Snapshot, _ time.Time) error {
		sup, err := snap.UpsertSupplier(id, name)
		if err != nil {
			return err
		}
		out = sup
		return nil
	})
	return out, err
}

// DeleteSupplier removes a supplier. Vehicles that referenced it keep their
// id and render with the unknown-supplier placeholder.
func (s *Service) DeleteSupplier(ctx context.Context, id string) error {
	return s.mutate(ctx, func(snap *yard.Snapshot, _ time.Time) error {
		return snap.DeleteSupplier(id)
	})
}

// SetStatusText overrides the display label for one status.
func (s *Service) SetStatusText(ctx context.Context, st yard.Status, label string) error {
	return s.mutate(ctx, func(snap *yard.Snapshot, _ time.Time) error {
		return snap.SetStatusText(st, label)
	})
}

// SetStatusTexts overrides several display labels in one mutation. Either
// the whole batch applies or none of it does.
func (s *Service) SetStatusTexts(ctx context.Context, labels map[yard.Status]string) error {
	return s.mutate(ctx, func(snap *yard.Snapshot, _ time.Time) error {
		return snap.SetStatusTexts(labels)
	})
}

// SetMaintenanceDocks replaces the maintenance set.
func (s *Service) SetMaintenanceDocks(ctx context.Context, dockIDs []string) error {
	return s.mutate(ctx, func(snap *yard.Snapshot, _ time.Time) error {
		return snap.SetMaintenanceDocks(dockIDs, s.cfg.Yard.TotalDocks)
	})
}

// Snapshot returns a deep clone of the current registry.
func (s *Service) Snapshot() *yard.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Dock states on the board.
const (
	DockAvailable   = "available"
	DockAssigned    = "assigned"
	DockUnloading   = "unloading"
	DockMaintenance = "maintenance"
)

// DockInfo is the board entry for one dock.
type DockInfo struct {
	ID         string `json:"id"`
	State      string `json:"state"`
	VehicleID  string `json:"vehicleId,omitempty"`
	VehicleReg string `json:"vehicleReg,omitempty"`
}

// DockBoard is the dock-centric read model.
type DockBoard struct {
	TotalDocks       int        `json:"totalDocks"`
	Docks            []DockInfo `json:"docks"`
	Available        []string   `json:"available"`
	MaintenanceDocks []string   `json:"maintenanceDocks"`
}

// Docks reports every dock's state, plus the available and maintenance sets.
func (s *Service) Docks() DockBoard {
	snap := s.Snapshot()
	total := s.cfg.Yard.TotalDocks
	occupied := yard.OccupiedDocks(snap.Vehicles)

	docks := make([]DockInfo, 0, total)
	for _, id := range yard.DockIDs(total) {
		info := DockInfo{ID: id, State: DockAvailable}
		if holder, ok := occupied[id]; ok {
			info.VehicleID = holder
			info.State = DockAssigned
			if v, err := snap.FindVehicle(holder); err == nil {
				info.VehicleReg = v.RegistrationNumber
				if v.Status == yard.StatusUnloading {
					info.State = DockUnloading
				}
			}
		} else if snap.InMaintenance(id) {
			info.State = DockMaintenance
		}
		docks = append(docks, info)
	}

	return DockBoard{
		TotalDocks:       total,
		Docks:            docks,
		Available:        yard.AvailableDocks(total, snap.Vehicles, snap.MaintenanceDocks),
		MaintenanceDocks: snap.MaintenanceDocks,
	}
}

// VehicleView is a vehicle enriched with its derived presentation fields.
type VehicleView struct {
	yard.Vehicle
	SupplierName      string       `json:"supplierName"`
	StatusLabel       string       `json:"statusLabel"`
	WaitMinutes       *int64       `json:"waitMinutes"`
	UnloadMinutes     *int64       `json:"unloadMinutes"`
	StagingUrgency    yard.Urgency `json:"stagingUrgency,omitempty"`
	UnloadingOvertime bool         `json:"unloadingOvertime"`
}

// Vehicles returns the enriched vehicle list, newest first.
func (s *Service) Vehicles() []VehicleView {
	snap := s.Snapshot()
	now := s.now()
	th := s.cfg.Yard.Thresholds()

	views := make([]VehicleView, 0, len(snap.Vehicles))
	for _, v := range snap.Vehicles {
		view := VehicleView{
			Vehicle:           *v,
			SupplierName:      supplierOrUnknown(snap, v.SupplierID),
			StatusLabel:       snap.StatusLabel(v.Status),
			UnloadingOvertime: yard.UnloadingOvertime(v, now, th),
		}
		if d, ok := yard.WaitTime(v); ok {
			m := yard.Minutes(d)
			view.WaitMinutes = &m
		}
		if d, ok := yard.UnloadDuration(v); ok {
			m := yard.Minutes(d)
			view.UnloadMinutes = &m
		}
		if v.Status == yard.StatusStaging {
			view.StagingUrgency = yard.StagingUrgency(v, now, th)
		}
		views = append(views, view)
	}
	return views
}

func supplierOrUnknown(snap *yard.Snapshot, id string) string {
	if name, ok := snap.SupplierName(id); ok {
		return name
	}
	return yard.UnknownSupplierName
}

// KPIs summarizes the current vehicle set.
func (s *Service) KPIs() yard.KPISummary {
	snap := s.Snapshot()
	return yard.Summarize(snap.Vehicles)
}

// ReportRows projects the registry into report rows, header excluded.
func (s *Service) ReportRows() [][]string {
	snap := s.Snapshot()
	return yard.ProjectRows(snap, s.cfg.Yard.Location())
}
