package yard

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTotalDocks is the yard's capacity when none is configured.
const DefaultTotalDocks = 10

// DockIDs returns the dock identifiers "1".."totalDocks".
func DockIDs(totalDocks int) []string {
	ids := make([]string, totalDocks)
	for i := range ids {
		ids[i] = strconv.Itoa(i + 1)
	}
	return ids
}

// ValidDockID reports whether dockID names a dock in [1, totalDocks].
func ValidDockID(dockID string, totalDocks int) bool {
	n, err := strconv.Atoi(dockID)
	return err == nil && n >= 1 && n <= totalDocks
}

// OccupiedDocks maps each dock to the vehicle currently holding it. A dock is
// held only by a vehicle in Called In or Unloading. Two vehicles claiming the
// same dock cannot happen through the allocator; if a restored snapshot
// carries such a conflict, the vehicle later in collection order wins.
func OccupiedDocks(vehicles []*Vehicle) map[string]string {
	occupied := make(map[string]string)
	for _, v := range vehicles {
		if v.AssignedDock == "" {
			continue
		}
		if v.Status == StatusCalledIn || v.Status == StatusUnloading {
			occupied[v.AssignedDock] = v.ID
		}
	}
	return occupied
}

// AvailableDocks returns the docks in [1, totalDocks] that are neither
// occupied nor under maintenance, in ascending numeric order.
func AvailableDocks(totalDocks int, vehicles []*Vehicle, maintenanceDocks []string) []string {
	occupied := OccupiedDocks(vehicles)
	maintenance := make(map[string]struct{}, len(maintenanceDocks))
	for _, d := range maintenanceDocks {
		maintenance[d] = struct{}{}
	}

	var available []string
	for _, id := range DockIDs(totalDocks) {
		if _, ok := occupied[id]; ok {
			continue
		}
		if _, ok := maintenance[id]; ok {
			continue
		}
		available = append(available, id)
	}
	return available
}

// AssignVehicleToDock calls a Staging vehicle in to a free dock: sets the
// dock, moves the vehicle to Called In, and stamps the call-in time.
func (s *Snapshot) AssignVehicleToDock(vehicleID, dockID string, totalDocks int, now time.Time) error {
	v, err := s.FindVehicle(vehicleID)
	if err != nil {
		return err
	}
	if v.Status != StatusStaging {
		return fmt.Errorf("dock assignment requires status %q, vehicle %s is %q: %w",
			StatusStaging, v.ID, v.Status, ErrInvalidTransition)
	}
	dockID = strings.TrimSpace(dockID)
	if dockID == "" {
		return fmt.Errorf("dock is required: %w", ErrValidation)
	}
	if err := s.checkDockFree(dockID, totalDocks, v.ID); err != nil {
		return err
	}

	ts := now.UnixMilli()
	v.Status = StatusCalledIn
	v.AssignedDock = dockID
	v.Timestamps.CalledIn = &ts
	return nil
}

// SetMaintenanceDocks replaces the maintenance set. Docks must be in range
// and must not be held by an active vehicle, so the maintenance and occupied
// sets can never intersect through the command surface.
func (s *Snapshot) SetMaintenanceDocks(dockIDs []string, totalDocks int) error {
	occupied := OccupiedDocks(s.Vehicles)
	cleaned := make([]string, 0, len(dockIDs))
	seen := make(map[string]struct{}, len(dockIDs))
	for _, d := range dockIDs {
		d = strings.TrimSpace(d)
		if !ValidDockID(d, totalDocks) {
			return fmt.Errorf("dock %q is out of range [1,%d]: %w", d, totalDocks, ErrValidation)
		}
		if holder, ok := occupied[d]; ok {
			return fmt.Errorf("dock %s is held by vehicle %s: %w", d, holder, ErrDockUnavailable)
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		cleaned = append(cleaned, d)
	}
	s.MaintenanceDocks = cleaned
	return nil
}

// checkDockFree validates range, occupancy, and maintenance for a target
// dock. A dock held by selfID counts as free, so a vehicle may keep its own
// dock through resource assignment.
func (s *Snapshot) checkDockFree(dockID string, totalDocks int, selfID string) error {
	if !ValidDockID(dockID, totalDocks) {
		return fmt.Errorf("dock %q is out of range [1,%d]: %w", dockID, totalDocks, ErrValidation)
	}
	if holder, ok := OccupiedDocks(s.Vehicles)[dockID]; ok && holder != selfID {
		return fmt.Errorf("dock %s is held by vehicle %s: %w", dockID, holder, ErrDockUnavailable)
	}
	if s.InMaintenance(dockID) {
		return fmt.Errorf("dock %s is under maintenance: %w", dockID, ErrDockUnavailable)
	}
	return nil
}
