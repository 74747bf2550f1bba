package yard

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ArrivalInput carries the fields needed to register a vehicle at the gate.
type ArrivalInput struct {
	RegistrationNumber string
	SupplierID         string
	ASN                string
}

// ResourceInput carries the unloading resources, assigned atomically together
// on the Called In -> Unloading transition.
type ResourceInput struct {
	DriverName            string
	AssignedDock          string
	LoadmenCount          int
	CleaningCrewAvailable bool
}

// RegisterArrival creates a vehicle in Staging and stamps its arrival time.
// Registration numbers are normalized to uppercase at entry.
func (s *Snapshot) RegisterArrival(in ArrivalInput, now time.Time) (*Vehicle, error) {
	reg := strings.ToUpper(strings.TrimSpace(in.RegistrationNumber))
	if reg == "" {
		return nil, fmt.Errorf("registration number is required: %w", ErrValidation)
	}
	supplierID := strings.TrimSpace(in.SupplierID)
	if supplierID == "" {
		return nil, fmt.Errorf("supplier is required: %w", ErrValidation)
	}

	v := &Vehicle{
		ID:                 uuid.NewString(),
		RegistrationNumber: reg,
		SupplierID:         supplierID,
		ASN:                strings.TrimSpace(in.ASN),
		Status:             StatusStaging,
		Timestamps:         Timestamps{Arrival: now.UnixMilli()},
	}

	// Newest first, matching how the board is read.
	s.Vehicles = append([]*Vehicle{v}, s.Vehicles...)
	return v, nil
}

// AssignResources moves a Called In vehicle to Unloading, stamping the
// unloading start and setting the driver, loadmen, and cleaning-crew fields
// in one step. The dock must be the one already held, or a free one.
func (s *Snapshot) AssignResources(vehicleID string, in ResourceInput, totalDocks int, now time.Time) error {
	v, err := s.FindVehicle(vehicleID)
	if err != nil {
		return err
	}
	if v.Status != StatusCalledIn {
		return fmt.Errorf("assign resources requires status %q, vehicle %s is %q: %w",
			StatusCalledIn, v.ID, v.Status, ErrInvalidTransition)
	}

	driver := strings.TrimSpace(in.DriverName)
	if driver == "" {
		return fmt.Errorf("driver name is required: %w", ErrValidation)
	}
	dock := strings.TrimSpace(in.AssignedDock)
	if dock == "" {
		return fmt.Errorf("dock is required: %w", ErrValidation)
	}
	if in.LoadmenCount < 1 {
		return fmt.Errorf("loadmen count must be at least 1: %w", ErrValidation)
	}
	if err := s.checkDockFree(dock, totalDocks, v.ID); err != nil {
		return err
	}

	ts := now.UnixMilli()
	v.Status = StatusUnloading
	v.Timestamps.UnloadingStart = &ts
	v.AssignedDock = dock
	v.DriverName = driver
	v.LoadmenCount = in.LoadmenCount
	v.CleaningCrewAvailable = in.CleaningCrewAvailable
	return nil
}

// CompleteUnloading moves an Unloading vehicle to Completed and stamps the
// unloading end. The dock reference is retained for the historical record;
// occupancy is derived from status, so the dock itself frees up.
func (s *Snapshot) CompleteUnloading(vehicleID string, now time.Time) error {
	v, err := s.FindVehicle(vehicleID)
	if err != nil {
		return err
	}
	if v.Status != StatusUnloading {
		return fmt.Errorf("complete unloading requires status %q, vehicle %s is %q: %w",
			StatusUnloading, v.ID, v.Status, ErrInvalidTransition)
	}

	ts := now.UnixMilli()
	v.Status = StatusCompleted
	v.Timestamps.UnloadingEnd = &ts
	return nil
}

// MarkDeparted moves a Completed vehicle to the terminal Departed state,
// stamping the departure and clearing the historical dock reference.
func (s *Snapshot) MarkDeparted(vehicleID string, now time.Time) error {
	v, err := s.FindVehicle(vehicleID)
	if err != nil {
		return err
	}
	if v.Status != StatusCompleted {
		return fmt.Errorf("mark departed requires status %q, vehicle %s is %q: %w",
			StatusCompleted, v.ID, v.Status, ErrInvalidTransition)
	}

	ts := now.UnixMilli()
	v.Status = StatusDeparted
	v.Timestamps.Departed = &ts
	v.AssignedDock = ""
	return nil
}

// AddDelayRemark sets or overwrites the free-text delay annotation. Allowed
// at any lifecycle stage; last write wins; status is untouched.
func (s *Snapshot) AddDelayRemark(vehicleID, remarks string) error {
	v, err := s.FindVehicle(vehicleID)
	if err != nil {
		return err
	}
	v.DelayRemarks = strings.TrimSpace(remarks)
	return nil
}

// DeleteVehicle removes a vehicle from the registry. Permitted from any
// state; not a lifecycle transition.
func (s *Snapshot) DeleteVehicle(vehicleID string) error {
	for i, v := range s.Vehicles {
		if v.ID == vehicleID {
			s.Vehicles = append(s.Vehicles[:i], s.Vehicles[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("vehicle %q: %w", vehicleID, ErrNotFound)
}

// UpsertSupplier creates a supplier (generating an id when none is given) or
// renames an existing one.
func (s *Snapshot) UpsertSupplier(id, name string) (Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Supplier{}, fmt.Errorf("supplier name is required: %w", ErrValidation)
	}

	id = strings.TrimSpace(id)
	if id == "" {
		sup := Supplier{ID: uuid.NewString(), Name: name}
		s.Suppliers = append(s.Suppliers, sup)
		return sup, nil
	}
	for i := range s.Suppliers {
		if s.Suppliers[i].ID == id {
			s.Suppliers[i].Name = name
			return s.Suppliers[i], nil
		}
	}
	sup := Supplier{ID: id, Name: name}
	s.Suppliers = append(s.Suppliers, sup)
	return sup, nil
}

// DeleteSupplier removes a supplier. Vehicles referencing it are left alone;
// their supplier display degrades to the placeholder.
func (s *Snapshot) DeleteSupplier(id string) error {
	for i, sup := range s.Suppliers {
		if sup.ID == id {
			s.Suppliers = append(s.Suppliers[:i], s.Suppliers[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("supplier %q: %w", id, ErrNotFound)
}

// SetStatusText overrides the display label for a status. Presentation only;
// the state machine never reads these.
func (s *Snapshot) SetStatusText(st Status, label string) error {
	return s.SetStatusTexts(map[Status]string{st: label})
}

// SetStatusTexts overrides display labels for several statuses at once.
// The whole batch is validated first; a bad entry leaves every label
// untouched.
func (s *Snapshot) SetStatusTexts(labels map[Status]string) error {
	cleaned := make(map[Status]string, len(labels))
	for st, label := range labels {
		if !ValidStatus(st) {
			return fmt.Errorf("unknown status %q: %w", st, ErrValidation)
		}
		label = strings.TrimSpace(label)
		if label == "" {
			return fmt.Errorf("label for status %q is required: %w", st, ErrValidation)
		}
		cleaned[st] = label
	}
	if s.StatusTexts == nil {
		s.StatusTexts = make(map[Status]string)
	}
	for st, label := range cleaned {
		s.StatusTexts[st] = label
	}
	return nil
}
