package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kmcneely/bloodlink/pkg/core/model"
)

// mockDirectory implements DonorLister over a fixed slice
type mockDirectory struct {
	donors []model.User
}

func (m *mockDirectory) List() []model.User {
	out := make([]model.User, len(m.donors))
	copy(out, m.donors)
	return out
}

func bt(group model.BloodGroup, rh model.RhFactor) *model.BloodType {
	return &model.BloodType{Group: group, RhFactor: rh}
}

func testDirectory() *mockDirectory {
	return &mockDirectory{donors: []model.User{
		{ID: "d1", Name: "Jane Doe", Location: "Metropolis", Role: model.RoleDonor, BloodType: bt(model.BloodGroupO, model.RhPositive)},
		{ID: "d2", Name: "John Smith", Location: "Metropolis", Role: model.RoleDonor, BloodType: bt(model.BloodGroupA, model.RhNegative)},
		{ID: "d3", Name: "Emily Johnson", Location: "Gotham City", Role: model.RoleDonor, BloodType: bt(model.BloodGroupB, model.RhPositive)},
		{ID: "d4", Name: "No Profile", Location: "Metropolis", Role: model.RoleDonor, BloodType: nil},
	}}
}

func donorIDs(donors []model.User) []string {
	ids := make([]string, len(donors))
	for i, d := range donors {
		ids[i] = d.ID
	}
	return ids
}

func TestSearchDonors_EmptyFiltersReturnFullDirectoryInOrder(t *testing.T) {
	donors, err := SearchDonors(context.Background(), testDirectory(), zap.NewNop(), DonorFilters{})
	require.NoError(t, err)
	assert.Equal(t, []string{"d1", "d2", "d3", "d4"}, donorIDs(donors))
}

func TestSearchDonors_FilterConjunction(t *testing.T) {
	tests := []struct {
		name    string
		filters DonorFilters
		want    []string
	}{
		{"blood group only", DonorFilters{BloodGroup: "O"}, []string{"d1"}},
		{"rh factor only", DonorFilters{RhFactor: "+"}, []string{"d1", "d3"}},
		{"location substring", DonorFilters{Location: "metro"}, []string{"d1", "d2", "d4"}},
		{"location case-insensitive", DonorFilters{Location: "GOTHAM"}, []string{"d3"}},
		{"group and location", DonorFilters{BloodGroup: "A", Location: "metropolis"}, []string{"d2"}},
		{"group and rh", DonorFilters{BloodGroup: "B", RhFactor: "+"}, []string{"d3"}},
		{"conjunction excludes", DonorFilters{BloodGroup: "B", RhFactor: "-"}, []string{}},
		{"no match", DonorFilters{Location: "atlantis"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			donors, err := SearchDonors(context.Background(), testDirectory(), zap.NewNop(), tt.filters)
			require.NoError(t, err)
			assert.Equal(t, tt.want, donorIDs(donors))
		})
	}
}

func TestSearchDonors_ExampleScenario(t *testing.T) {
	// O+ donor in Metropolis matches group O and substring "metro" but not group A
	directory := &mockDirectory{donors: []model.User{
		{ID: "d1", Location: "Metropolis", BloodType: bt(model.BloodGroupO, model.RhPositive)},
	}}

	donors, err := SearchDonors(context.Background(), directory, zap.NewNop(), DonorFilters{BloodGroup: "O"})
	require.NoError(t, err)
	assert.Len(t, donors, 1)

	donors, err = SearchDonors(context.Background(), directory, zap.NewNop(), DonorFilters{Location: "metro"})
	require.NoError(t, err)
	assert.Len(t, donors, 1)

	donors, err = SearchDonors(context.Background(), directory, zap.NewNop(), DonorFilters{BloodGroup: "A"})
	require.NoError(t, err)
	assert.Empty(t, donors)
}

func TestSearchDonors_UnprofiledDonorFailsBloodTypeFilters(t *testing.T) {
	donors, err := SearchDonors(context.Background(), testDirectory(), zap.NewNop(), DonorFilters{RhFactor: "-"})
	require.NoError(t, err)
	assert.Equal(t, []string{"d2"}, donorIDs(donors))
}

func TestSearchDonors_InvalidFilterValues(t *testing.T) {
	_, err := SearchDonors(context.Background(), testDirectory(), zap.NewNop(), DonorFilters{BloodGroup: "C"})
	assert.Error(t, err)

	_, err = SearchDonors(context.Background(), testDirectory(), zap.NewNop(), DonorFilters{RhFactor: "positive"})
	assert.Error(t, err)
}
