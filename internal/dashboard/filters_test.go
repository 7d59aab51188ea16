package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenus(t *testing.T) {
	c := Classification{Categorical: []string{"Environment", "Call Type"}, Numerical: []string{"SNR"}}
	menus := Menus(c)
	require.Len(t, menus, 4)

	for _, m := range menus {
		require.NotEmpty(t, m.Options)
		assert.Equal(t, Option{Value: "", Label: NoneLabel}, m.Options[0])
	}
	assert.Equal(t, "Categorical Filtering", menus[0].Label)
	assert.Len(t, menus[0].Options, 3)
	assert.Equal(t, "SNR", menus[1].Options[1].Value)
	assert.Equal(t, "Call Type", menus[3].Options[2].Value)
}

func TestFilterSelection_Sanitize(t *testing.T) {
	c := Classification{Categorical: []string{"Environment"}, Numerical: []string{"SNR"}}

	got := FilterSelection{
		Category: "Environment",
		Size:     "Environment",
		RowFacet: "Tower ID",
		ColFacet: "Environment",
	}.Sanitize(c)

	assert.Equal(t, FilterSelection{Category: "Environment", ColFacet: "Environment"}, got)
	assert.True(t, FilterSelection{}.Sanitize(c).IsZero())
}

func TestFilterSelection_Validate(t *testing.T) {
	c := Classification{Categorical: []string{"Environment"}, Numerical: []string{"SNR"}}

	tests := []struct {
		name       string
		filters    FilterSelection
		wantFilter string
	}{
		{name: "unset", filters: FilterSelection{}},
		{name: "valid", filters: FilterSelection{Category: "Environment", Size: "SNR"}},
		{name: "numeric as category", filters: FilterSelection{Category: "SNR"}, wantFilter: FilterCategory},
		{name: "unknown size", filters: FilterSelection{Size: "Latency"}, wantFilter: FilterSize},
		{name: "bad row facet", filters: FilterSelection{RowFacet: "SNR"}, wantFilter: FilterRowFacet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filters.Validate(c)
			if tt.wantFilter == "" {
				assert.NoError(t, err)
				return
			}
			var ife *InvalidFilterError
			require.ErrorAs(t, err, &ife)
			assert.Equal(t, tt.wantFilter, ife.Filter)
		})
	}
}

func TestFilterSelection_Get(t *testing.T) {
	f := FilterSelection{Category: "a", Size: "b", RowFacet: "c", ColFacet: "d"}
	assert.Equal(t, "a", f.Get(FilterCategory))
	assert.Equal(t, "b", f.Get(FilterSize))
	assert.Equal(t, "c", f.Get(FilterRowFacet))
	assert.Equal(t, "d", f.Get(FilterColFacet))
	assert.Empty(t, f.Get("other"))
}
