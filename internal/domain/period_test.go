package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/reedmaris/bls-data-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFrequency(t *testing.T) {
	cases := []struct {
		period string
		want   domain.Frequency
	}{
		{"M03", domain.Monthly},
		{"Q01", domain.Quarterly},
		{"S02", domain.SemiAnnual},
		{"A01", domain.Annual},
	}
	for _, tc := range cases {
		t.Run(tc.period, func(t *testing.T) {
			got, err := domain.DetectFrequency(tc.period)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := domain.DetectFrequency("X01")
	var perr *domain.PeriodParseError
	require.ErrorAs(t, err, &perr)
}

func TestFrequency_DateKey(t *testing.T) {
	cases := []struct {
		name   string
		freq   domain.Frequency
		year   string
		period string
		want   string
	}{
		{"monthly march", domain.Monthly, "2020", "M03", "2020-03"},
		{"monthly december", domain.Monthly, "2020", "M12", "2020-12"},
		{"quarterly first", domain.Quarterly, "2021", "Q01", "2021-01"},
		{"quarterly fourth", domain.Quarterly, "2021", "Q04", "2021-04"},
		{"semiannual first half", domain.SemiAnnual, "2019", "S01", "2019-06"},
		{"semiannual second half", domain.SemiAnnual, "2019", "S02", "2019-12"},
		{"annual", domain.Annual, "2022", "A01", "2022"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.freq.DateKey(tc.year, tc.period)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFrequency_DateKey_Invalid(t *testing.T) {
	cases := []struct {
		name   string
		freq   domain.Frequency
		year   string
		period string
	}{
		{"month out of range", domain.Monthly, "2020", "M13"},
		{"month not numeric", domain.Monthly, "2020", "Mxx"},
		{"quarter out of range", domain.Quarterly, "2020", "Q05"},
		{"half out of range", domain.SemiAnnual, "2020", "S03"},
		{"year not numeric", domain.Monthly, "20x0", "M03"},
		{"annual year not numeric", domain.Annual, "abcd", "A01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.freq.DateKey(tc.year, tc.period)
			var perr *domain.PeriodParseError
			require.ErrorAs(t, err, &perr)
		})
	}
}

func TestNormalize_MonthlySortedAscending(t *testing.T) {
	merged, err := domain.Merge([]domain.SeriesData{
		{ID: "LAUST060000000000003", Observations: []domain.Observation{
			{Year: "2020", Period: "M12", Value: "5.0"},
			{Year: "2020", Period: "M03", Value: "4.0"},
			{Year: "2019", Period: "M12", Value: "3.9"},
		}},
	})
	require.NoError(t, err)

	table, err := domain.Normalize(merged)
	require.NoError(t, err)

	assert.Equal(t, []string{"2019-12", "2020-03", "2020-12"}, table.Index)
	assert.Equal(t, []string{"LAUST060000000000003"}, table.Columns)

	v, ok := table.At("2020-03", "LAUST060000000000003")
	require.True(t, ok)
	assert.Equal(t, 4.0, v)
}

func TestNormalize_AnnualKeepsYearKey(t *testing.T) {
	merged, err := domain.Merge([]domain.SeriesData{
		{ID: "ENU0600010010", Observations: []domain.Observation{
			{Year: "2022", Period: "A01", Value: "100"},
			{Year: "2021", Period: "A01", Value: "90"},
		}},
	})
	require.NoError(t, err)

	table, err := domain.Normalize(merged)
	require.NoError(t, err)
	assert.Equal(t, []string{"2021", "2022"}, table.Index)
}

func TestNormalize_RowCountEqualsDistinctPeriods(t *testing.T) {
	merged, err := domain.Merge([]domain.SeriesData{
		{ID: "A1", Observations: []domain.Observation{
			{Year: "2020", Period: "M01", Value: "1"},
			{Year: "2020", Period: "M02", Value: "2"},
		}},
		{ID: "B1", Observations: []domain.Observation{
			{Year: "2020", Period: "M02", Value: "3"},
			{Year: "2020", Period: "M04", Value: "4"},
		}},
	})
	require.NoError(t, err)

	table, err := domain.Normalize(merged)
	require.NoError(t, err)
	assert.Len(t, table.Index, 3)

	// Cells for series without an observation at a period stay nil.
	assert.Nil(t, table.Rows[0][1]) // 2020-01, B1
	assert.Nil(t, table.Rows[2][0]) // 2020-04, A1
}

func TestNormalize_GarbledPeriodAbortsTable(t *testing.T) {
	merged, err := domain.Merge([]domain.SeriesData{
		{ID: "A1", Observations: []domain.Observation{
			{Year: "2020", Period: "M01", Value: "1"},
			{Year: "2020", Period: "M99", Value: "2"},
		}},
	})
	require.NoError(t, err)

	_, err = domain.Normalize(merged)
	var perr *domain.PeriodParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "M99", perr.Period)
}

func TestTable_Clone(t *testing.T) {
	merged, err := domain.Merge([]domain.SeriesData{
		{ID: "A1", Observations: []domain.Observation{
			{Year: "2020", Period: "M01", Value: "1"},
		}},
	})
	require.NoError(t, err)
	table, err := domain.Normalize(merged)
	require.NoError(t, err)

	clone := table.Clone()
	clone.Columns[0] = "renamed"
	clone.Index[0] = "changed"

	if diff := cmp.Diff([]string{"A1"}, table.Columns); diff != "" {
		t.Errorf("original columns changed (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"2020-01"}, table.Index)
}
