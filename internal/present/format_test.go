package present_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/reedmaris/bls-data-service/internal/domain"
	"github.com/reedmaris/bls-data-service/internal/present"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fv(v float64) *float64 { return &v }

func testTable() domain.Table {
	return domain.Table{
		Index:   []string{"2020-01", "2020-02"},
		Columns: []string{"ENU0600010010", "ENU0603710010", "CES0000000001"},
		Rows: [][]*float64{
			{fv(1), fv(2), fv(3)},
			{fv(4), nil, fv(6)},
		},
	}
}

func testLocations() map[string]string {
	return map[string]string{
		"ENU0600010010": "California -- Statewide",
		"ENU0603710010": "Los Angeles County, California",
	}
}

func TestShortName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"California -- Statewide", "California"},
		{"Los Angeles County, California", "Los Angeles County"},
		{"National", "National"},
		{"A, B -- C", "A"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, present.ShortName(tc.in), "input %q", tc.in)
	}
}

func TestFormat_ResolvedNames(t *testing.T) {
	view := present.Format(testTable(), testLocations(), present.Options{})

	assert.Equal(t, []string{
		"California -- Statewide",
		"Los Angeles County, California",
		"CES0000000001", // unresolved, left as-is
	}, view.Columns)
}

func TestFormat_ShortNames(t *testing.T) {
	view := present.Format(testTable(), testLocations(), present.Options{ShortNames: true})

	assert.Equal(t, []string{"California", "Los Angeles County", "CES0000000001"}, view.Columns)
}

func TestFormat_OverridesWin(t *testing.T) {
	view := present.Format(testTable(), testLocations(), present.Options{
		ShortNames: true,
		Overrides: map[string]string{
			"ENU0600010010": "CA (all)",
			"CES0000000001": "All Employees",
		},
	})

	assert.Equal(t, []string{"CA (all)", "Los Angeles County", "All Employees"}, view.Columns)
}

func TestFormat_Descending(t *testing.T) {
	view := present.Format(testTable(), nil, present.Options{Descending: true})

	assert.Equal(t, []string{"2020-02", "2020-01"}, view.Index)
	require.NotNil(t, view.Rows[0][0])
	assert.Equal(t, 4.0, *view.Rows[0][0])
	assert.Nil(t, view.Rows[0][1])
}

func TestFormat_Transpose(t *testing.T) {
	view := present.Format(testTable(), nil, present.Options{Transpose: true})

	assert.Equal(t, []string{"ENU0600010010", "ENU0603710010", "CES0000000001"}, view.Index)
	assert.Equal(t, []string{"2020-01", "2020-02"}, view.Columns)
	require.Len(t, view.Rows, 3)
	assert.Equal(t, 2.0, *view.Rows[1][0])
	assert.Nil(t, view.Rows[1][1])
}

func TestFormat_DoesNotMutateInput(t *testing.T) {
	table := testTable()
	want := testTable()

	present.Format(table, testLocations(), present.Options{
		ShortNames: true,
		Transpose:  true,
		Descending: true,
		Overrides:  map[string]string{"ENU0600010010": "x"},
	})

	if diff := cmp.Diff(want, table); diff != "" {
		t.Errorf("canonical table mutated (-want +got):\n%s", diff)
	}
}
