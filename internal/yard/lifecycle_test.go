package yard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// timestampPrefix returns which canonical timestamps are present, in order.
func timestampPrefix(v *Vehicle) []string {
	present := []string{"arrival"}
	if v.Timestamps.CalledIn != nil {
		present = append(present, "calledIn")
	}
	if v.Timestamps.UnloadingStart != nil {
		present = append(present, "unloadingStart")
	}
	if v.Timestamps.UnloadingEnd != nil {
		present = append(present, "unloadingEnd")
	}
	if v.Timestamps.Departed != nil {
		present = append(present, "departed")
	}
	return present
}

func TestRegisterArrival(t *testing.T) {
	now := time.Now()
	snap := NewSnapshot()
	snap.Suppliers = []Supplier{{ID: "S05", Name: "Delhivery Logistics"}}

	v, err := snap.RegisterArrival(ArrivalInput{
		RegistrationNumber: "mh 12 ab 1234",
		SupplierID:         "S05",
		ASN:                "ASN-99",
	}, now)
	require.NoError(t, err)

	assert.Equal(t, "MH 12 AB 1234", v.RegistrationNumber, "registration should be uppercased at entry")
	assert.Equal(t, StatusStaging, v.Status)
	assert.Equal(t, now.UnixMilli(), v.Timestamps.Arrival)
	assert.Empty(t, v.AssignedDock)
	assert.NotEmpty(t, v.ID)

	// Newest vehicle goes to the front of the collection.
	second, err := snap.RegisterArrival(ArrivalInput{RegistrationNumber: "DL 03 BC 5678", SupplierID: "S05"}, now)
	require.NoError(t, err)
	assert.Equal(t, second.ID, snap.Vehicles[0].ID)
	assert.Equal(t, v.ID, snap.Vehicles[1].ID)
}

func TestRegisterArrival_Validation(t *testing.T) {
	snap := NewSnapshot()

	_, err := snap.RegisterArrival(ArrivalInput{RegistrationNumber: "  ", SupplierID: "S01"}, time.Now())
	assert.ErrorIs(t, err, ErrValidation)

	_, err = snap.RegisterArrival(ArrivalInput{RegistrationNumber: "KA 05 CD 9012", SupplierID: ""}, time.Now())
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, snap.Vehicles, "failed registrations must not mutate the registry")
}

// TestFullLifecycle drives one vehicle through every forward transition and
// checks the timestamp-prefix and dock invariants at each step.
func TestFullLifecycle(t *testing.T) {
	base := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	snap := NewSnapshot()
	snap.Suppliers = []Supplier{{ID: "S05", Name: "Delhivery Logistics"}}

	v, err := snap.RegisterArrival(ArrivalInput{RegistrationNumber: "MH 12 AB 1234", SupplierID: "S05"}, base)
	require.NoError(t, err)
	assert.Equal(t, []string{"arrival"}, timestampPrefix(v))

	// Staging -> Called In via dock assignment.
	require.NoError(t, snap.AssignVehicleToDock(v.ID, "3", DefaultTotalDocks, base.Add(30*time.Minute)))
	assert.Equal(t, StatusCalledIn, v.Status)
	assert.Equal(t, "3", v.AssignedDock)
	assert.Equal(t, []string{"arrival", "calledIn"}, timestampPrefix(v))

	// Called In -> Unloading with resources set atomically.
	err = snap.AssignResources(v.ID, ResourceInput{
		DriverName:            "Ramesh",
		AssignedDock:          "3",
		LoadmenCount:          4,
		CleaningCrewAvailable: false,
	}, DefaultTotalDocks, base.Add(45*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, StatusUnloading, v.Status)
	assert.Equal(t, "Ramesh", v.DriverName)
	assert.Equal(t, 4, v.LoadmenCount)
	assert.False(t, v.CleaningCrewAvailable)
	assert.Equal(t, []string{"arrival", "calledIn", "unloadingStart"}, timestampPrefix(v))

	// Unloading -> Completed keeps the dock for the historical record.
	require.NoError(t, snap.CompleteUnloading(v.ID, base.Add(2*time.Hour)))
	assert.Equal(t, StatusCompleted, v.Status)
	assert.Equal(t, "3", v.AssignedDock, "dock is retained through Completed")
	assert.NotContains(t, OccupiedDocks(snap.Vehicles), "3", "a Completed vehicle does not occupy its dock")

	// Completed -> Departed clears the dock.
	require.NoError(t, snap.MarkDeparted(v.ID, base.Add(3*time.Hour)))
	assert.Equal(t, StatusDeparted, v.Status)
	assert.Empty(t, v.AssignedDock)
	assert.Equal(t, []string{"arrival", "calledIn", "unloadingStart", "unloadingEnd", "departed"}, timestampPrefix(v))

	// Timestamps are monotonically increasing.
	ts := v.Timestamps
	assert.Less(t, ts.Arrival, *ts.CalledIn)
	assert.Less(t, *ts.CalledIn, *ts.UnloadingStart)
	assert.Less(t, *ts.UnloadingStart, *ts.UnloadingEnd)
	assert.Less(t, *ts.UnloadingEnd, *ts.Departed)
}

func TestTransitionGuards(t *testing.T) {
	now := time.Now()

	newStagingSnap := func(t *testing.T) (*Snapshot, *Vehicle) {
		snap := NewSnapshot()
		v, err := snap.RegisterArrival(ArrivalInput{RegistrationNumber: "TN 22 DE 3456", SupplierID: "S08"}, now)
		require.NoError(t, err)
		return snap, v
	}

	t.Run("complete from staging is rejected without side effects", func(t *testing.T) {
		snap, v := newStagingSnap(t)
		before := *v

		err := snap.CompleteUnloading(v.ID, now)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, before, *v, "no fields may change on a rejected transition")
	})

	t.Run("resources from staging is rejected", func(t *testing.T) {
		snap, v := newStagingSnap(t)
		err := snap.AssignResources(v.ID, ResourceInput{DriverName: "Ramesh", AssignedDock: "1", LoadmenCount: 2}, DefaultTotalDocks, now)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, StatusStaging, v.Status)
	})

	t.Run("depart before completion is rejected", func(t *testing.T) {
		snap, v := newStagingSnap(t)
		require.NoError(t, snap.AssignVehicleToDock(v.ID, "1", DefaultTotalDocks, now))
		err := snap.MarkDeparted(v.ID, now)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("terminal state admits nothing", func(t *testing.T) {
		snap, v := newStagingSnap(t)
		require.NoError(t, snap.AssignVehicleToDock(v.ID, "1", DefaultTotalDocks, now))
		require.NoError(t, snap.AssignResources(v.ID, ResourceInput{DriverName: "Sunita", AssignedDock: "1", LoadmenCount: 1}, DefaultTotalDocks, now))
		require.NoError(t, snap.CompleteUnloading(v.ID, now))
		require.NoError(t, snap.MarkDeparted(v.ID, now))

		assert.ErrorIs(t, snap.MarkDeparted(v.ID, now), ErrInvalidTransition)
		assert.ErrorIs(t, snap.CompleteUnloading(v.ID, now), ErrInvalidTransition)
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		snap, _ := newStagingSnap(t)
		assert.ErrorIs(t, snap.CompleteUnloading("no-such-id", now), ErrNotFound)
	})
}

func TestAssignResources_Validation(t *testing.T) {
	now := time.Now()
	snap := NewSnapshot()
	v, err := snap.RegisterArrival(ArrivalInput{RegistrationNumber: "PB 65 FG 1234", SupplierID: "S03"}, now)
	require.NoError(t, err)
	require.NoError(t, snap.AssignVehicleToDock(v.ID, "2", DefaultTotalDocks, now))

	cases := []struct {
		name string
		in   ResourceInput
	}{
		{"empty driver", ResourceInput{DriverName: " ", AssignedDock: "2", LoadmenCount: 2}},
		{"empty dock", ResourceInput{DriverName: "Amit", AssignedDock: "", LoadmenCount: 2}},
		{"zero loadmen", ResourceInput{DriverName: "Amit", AssignedDock: "2", LoadmenCount: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := snap.AssignResources(v.ID, tc.in, DefaultTotalDocks, now)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, StatusCalledIn, v.Status)
			assert.Nil(t, v.Timestamps.UnloadingStart)
		})
	}
}

func TestAddDelayRemark(t *testing.T) {
	now := time.Now()
	snap := NewSnapshot()
	v, err := snap.RegisterArrival(ArrivalInput{RegistrationNumber: "WB 11 IJ 9012", SupplierID: "S05"}, now)
	require.NoError(t, err)

	require.NoError(t, snap.AddDelayRemark(v.ID, "Heavy traffic at gate."))
	assert.Equal(t, "Heavy traffic at gate.", v.DelayRemarks)

	// Idempotent: a repeated write leaves the field equal, no duplication.
	require.NoError(t, snap.AddDelayRemark(v.ID, "Heavy traffic at gate."))
	assert.Equal(t, "Heavy traffic at gate.", v.DelayRemarks)

	// Last write wins, status untouched.
	require.NoError(t, snap.AddDelayRemark(v.ID, "Cleared."))
	assert.Equal(t, "Cleared.", v.DelayRemarks)
	assert.Equal(t, StatusStaging, v.Status)

	assert.ErrorIs(t, snap.AddDelayRemark("missing", "x"), ErrNotFound)
}

func TestDeleteVehicle(t *testing.T) {
	now := time.Now()
	snap := NewSnapshot()
	v1, err := snap.RegisterArrival(ArrivalInput{RegistrationNumber: "RJ 14 KL 3456", SupplierID: "S06"}, now)
	require.NoError(t, err)
	v2, err := snap.RegisterArrival(ArrivalInput{RegistrationNumber: "MP 09 MN 7890", SupplierID: "S01"}, now)
	require.NoError(t, err)

	// Deletion is allowed mid-lifecycle.
	require.NoError(t, snap.AssignVehicleToDock(v1.ID, "5", DefaultTotalDocks, now))
	require.NoError(t, snap.DeleteVehicle(v1.ID))
	assert.Len(t, snap.Vehicles, 1)
	assert.Equal(t, v2.ID, snap.Vehicles[0].ID)
	assert.Empty(t, OccupiedDocks(snap.Vehicles), "deleting the holder frees its dock")

	err = snap.DeleteVehicle(v1.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSupplierManagement(t *testing.T) {
	snap := NewSnapshot()

	sup, err := snap.UpsertSupplier("", "Global Foods Inc.")
	require.NoError(t, err)
	assert.NotEmpty(t, sup.ID)

	renamed, err := snap.UpsertSupplier(sup.ID, "Global Foods International")
	require.NoError(t, err)
	assert.Equal(t, sup.ID, renamed.ID)
	name, ok := snap.SupplierName(sup.ID)
	require.True(t, ok)
	assert.Equal(t, "Global Foods International", name)

	_, err = snap.UpsertSupplier("", "  ")
	assert.ErrorIs(t, err, ErrValidation)

	// Deleting a supplier leaves vehicles referencing it intact.
	v, err := snap.RegisterArrival(ArrivalInput{RegistrationNumber: "GJ 01 FA 7890", SupplierID: sup.ID}, time.Now())
	require.NoError(t, err)
	require.NoError(t, snap.DeleteSupplier(sup.ID))
	assert.Len(t, snap.Vehicles, 1)
	assert.Equal(t, sup.ID, v.SupplierID, "dangling reference is tolerated")
	_, ok = snap.SupplierName(sup.ID)
	assert.False(t, ok)

	assert.ErrorIs(t, snap.DeleteSupplier(sup.ID), ErrNotFound)
}

func TestSetStatusText(t *testing.T) {
	snap := NewSnapshot()

	require.NoError(t, snap.SetStatusText(StatusStaging, "Waiting at Gate"))
	assert.Equal(t, "Waiting at Gate", snap.StatusLabel(StatusStaging))

	assert.ErrorIs(t, snap.SetStatusText(Status("Parked"), "x"), ErrValidation)
	assert.ErrorIs(t, snap.SetStatusText(StatusStaging, ""), ErrValidation)

	// Unset statuses fall back to defaults.
	assert.Equal(t, "Unloading Completed", snap.StatusLabel(StatusCompleted))
}

func TestSetStatusTextsBatchIsAtomic(t *testing.T) {
	snap := NewSnapshot()

	require.NoError(t, snap.SetStatusTexts(map[Status]string{
		StatusStaging:  "Waiting at Gate",
		StatusCalledIn: "Summoned",
	}))
	assert.Equal(t, "Waiting at Gate", snap.StatusLabel(StatusStaging))
	assert.Equal(t, "Summoned", snap.StatusLabel(StatusCalledIn))

	// One bad entry rejects the whole batch, valid entries included.
	err := snap.SetStatusTexts(map[Status]string{
		StatusStaging:  "Changed",
		StatusDeparted: "",
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Waiting at Gate", snap.StatusLabel(StatusStaging))
	assert.Equal(t, "Departed", snap.StatusLabel(StatusDeparted))

	err = snap.SetStatusTexts(map[Status]string{
		StatusCalledIn:   "Changed",
		Status("Parked"): "x",
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Summoned", snap.StatusLabel(StatusCalledIn))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusStaging, StatusCalledIn))
	assert.True(t, CanTransition(StatusCompleted, StatusDeparted))
	assert.False(t, CanTransition(StatusStaging, StatusUnloading), "no skipping states")
	assert.False(t, CanTransition(StatusUnloading, StatusCalledIn), "no going backward")
	assert.False(t, CanTransition(StatusDeparted, StatusStaging), "terminal state")
	assert.False(t, CanTransition(StatusStaging, StatusStaging))
}
