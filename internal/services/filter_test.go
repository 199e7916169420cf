package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmed123456787/recipe-api/internal/services"
)

func TestParseIDList(t *testing.T) {
	ids, err := services.ParseIDList("1,4,7")
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 4, 7}, ids)

	ids, err = services.ParseIDList("12")
	require.NoError(t, err)
	assert.Equal(t, []uint{12}, ids)

	ids, err = services.ParseIDList(" 3 , 5 ")
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 5}, ids)
}

func TestParseIDList_Empty(t *testing.T) {
	ids, err := services.ParseIDList("")
	require.NoError(t, err)
	assert.Nil(t, ids)
}

func TestParseIDList_Malformed(t *testing.T) {
	for _, raw := range []string{"abc", "1,abc", "1,,2", "1.5", "-3"} {
		_, err := services.ParseIDList(raw)
		assert.ErrorIs(t, err, services.ErrBadFilter, "input %q", raw)
	}
}

func TestParseAssignedOnly(t *testing.T) {
	got, err := services.ParseAssignedOnly("")
	require.NoError(t, err)
	assert.False(t, got)

	got, err = services.ParseAssignedOnly("0")
	require.NoError(t, err)
	assert.False(t, got)

	got, err = services.ParseAssignedOnly("1")
	require.NoError(t, err)
	assert.True(t, got)

	// Any nonzero integer counts as true.
	got, err = services.ParseAssignedOnly("7")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestParseAssignedOnly_Malformed(t *testing.T) {
	_, err := services.ParseAssignedOnly("yes")
	assert.ErrorIs(t, err, services.ErrBadFilter)
}
