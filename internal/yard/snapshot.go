package yard

import "fmt"

// Timestamps records the instants at which a vehicle advanced through the
// lifecycle, as Unix milliseconds. Arrival is always present; the rest are
// present iff the corresponding transition has occurred.
type Timestamps struct {
	Arrival        int64  `json:"arrival"`
	CalledIn       *int64 `json:"calledIn,omitempty"`
	UnloadingStart *int64 `json:"unloadingStart,omitempty"`
	UnloadingEnd   *int64 `json:"unloadingEnd,omitempty"`
	Departed       *int64 `json:"departed,omitempty"`
}

// Vehicle is one unit of work flowing through the receiving yard.
type Vehicle struct {
	ID                    string     `json:"id"`
	RegistrationNumber    string     `json:"registrationNumber"`
	SupplierID            string     `json:"supplierId"`
	ASN                   string     `json:"asn,omitempty"`
	Status                Status     `json:"status"`
	Timestamps            Timestamps `json:"timestamps"`
	AssignedDock          string     `json:"assignedDock,omitempty"`
	DriverName            string     `json:"driverName,omitempty"`
	LoadmenCount          int        `json:"loadmenCount,omitempty"`
	CleaningCrewAvailable bool       `json:"cleaningCrewAvailable,omitempty"`
	DelayRemarks          string     `json:"delayRemarks,omitempty"`
}

// Supplier is an independent reference entity. Deleting one does not cascade
// to vehicles; dangling supplier references degrade to a placeholder name.
type Supplier struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Shift is read-only reference data; lifecycle logic never consumes it.
type Shift struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// UnknownSupplierName is the display fallback for a dangling supplier reference.
const UnknownSupplierName = "Unknown Supplier"

// Snapshot is the entity registry: the single consistent state that every
// yard operation reads and mutates. Vehicles are kept newest-first; the
// order is preserved across persistence round-trips.
type Snapshot struct {
	Vehicles         []*Vehicle        `json:"vehicles"`
	Suppliers        []Supplier        `json:"suppliers"`
	Shifts           []Shift           `json:"shifts"`
	StatusTexts      map[Status]string `json:"statusTexts"`
	MaintenanceDocks []string          `json:"maintenanceDocks"`
}

// NewSnapshot returns an empty registry with default status labels.
func NewSnapshot() *Snapshot {
	return &Snapshot{StatusTexts: DefaultStatusTexts()}
}

// Clone returns a deep copy. Read-only consumers work on clones so the live
// registry is only ever touched under the owner's serialization point.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Vehicles:         make([]*Vehicle, len(s.Vehicles)),
		Suppliers:        append([]Supplier(nil), s.Suppliers...),
		Shifts:           append([]Shift(nil), s.Shifts...),
		StatusTexts:      make(map[Status]string, len(s.StatusTexts)),
		MaintenanceDocks: append([]string(nil), s.MaintenanceDocks...),
	}
	for i, v := range s.Vehicles {
		c := *v
		c.Timestamps = cloneTimestamps(v.Timestamps)
		out.Vehicles[i] = &c
	}
	for k, v := range s.StatusTexts {
		out.StatusTexts[k] = v
	}
	return out
}

func cloneTimestamps(t Timestamps) Timestamps {
	return Timestamps{
		Arrival:        t.Arrival,
		CalledIn:       cloneMillis(t.CalledIn),
		UnloadingStart: cloneMillis(t.UnloadingStart),
		UnloadingEnd:   cloneMillis(t.UnloadingEnd),
		Departed:       cloneMillis(t.Departed),
	}
}

func cloneMillis(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// FindVehicle returns the vehicle with the given id.
func (s *Snapshot) FindVehicle(id string) (*Vehicle, error) {
	for _, v := range s.Vehicles {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, fmt.Errorf("vehicle %q: %w", id, ErrNotFound)
}

// SupplierName resolves a supplier id to its display name.
func (s *Snapshot) SupplierName(id string) (string, bool) {
	for _, sup := range s.Suppliers {
		if sup.ID == id {
			return sup.Name, true
		}
	}
	return "", false
}

// StatusLabel returns the configured display text for a status, falling back
// to the built-in default.
func (s *Snapshot) StatusLabel(st Status) string {
	if label, ok := s.StatusTexts[st]; ok && label != "" {
		return label
	}
	return DefaultStatusTexts()[st]
}

// InMaintenance reports whether the dock is in the maintenance set.
func (s *Snapshot) InMaintenance(dockID string) bool {
	for _, d := range s.MaintenanceDocks {
		if d == dockID {
			return true
		}
	}
	return false
}
