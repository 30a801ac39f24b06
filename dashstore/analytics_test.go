package dashstore_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sohipren/dashboard/dashstore"
	"github.com/sohipren/dashboard/testutil"
	"github.com/sohipren/dashboard/types"
)

func TestAnalytics(t *testing.T) {
	m := testutil.NewManager(t)
	testutil.SeedFleet(t, m)

	history, err := m.Maintenance().History()
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}

	t.Run("cost by part", func(t *testing.T) {
		want := map[string]float64{"Motor": 650, "Freios": 200}
		if diff := cmp.Diff(want, dashstore.CostByPart(history)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("frequency by type", func(t *testing.T) {
		want := map[types.MaintenanceType]int{types.Preventive: 2, types.Corrective: 1}
		if diff := cmp.Diff(want, dashstore.FrequencyByType(history)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("mean cost by type", func(t *testing.T) {
		want := map[types.MaintenanceType]float64{types.Preventive: 175, types.Corrective: 500}
		if diff := cmp.Diff(want, dashstore.MeanCostByType(history)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("summary", func(t *testing.T) {
		want := dashstore.MaintenanceSummary{
			Count:  3,
			Total:  850,
			Mean:   850.0 / 3,
			Median: 200,
			Min:    150,
			Max:    500,
			Range:  350,
		}
		if diff := cmp.Diff(want, dashstore.Summarize(history)); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("history is chronological", func(t *testing.T) {
		if !dashstore.IsChronological(history) {
			t.Error("expected chronological history")
		}
	})
}

func TestSummarizeEdgeCases(t *testing.T) {
	if got := dashstore.Summarize(nil); got != (dashstore.MaintenanceSummary{}) {
		t.Errorf("expected zero summary, got %+v", got)
	}

	even := []types.MaintenanceRecord{{Cost: 10}, {Cost: 40}, {Cost: 20}, {Cost: 30}}
	if got := dashstore.Summarize(even).Median; got != 25 {
		t.Errorf("expected median 25, got %v", got)
	}
}

func TestIsChronological(t *testing.T) {
	tests := []struct {
		name   string
		stamps []string
		want   bool
	}{
		{"empty", nil, true},
		{"ordered", []string{"2024-01-01T10:00:00Z", "2024-01-01T10:00:00Z", "2024-01-02T00:00:00Z"}, true},
		{"out of order", []string{"2024-01-02T00:00:00Z", "2024-01-01T00:00:00Z"}, false},
		{"unparsable", []string{"yesterday"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]types.MaintenanceRecord, len(tt.stamps))
			for i, s := range tt.stamps {
				records[i].Timestamp = s
			}
			if got := dashstore.IsChronological(records); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
