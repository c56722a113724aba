package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripWhitespace(t *testing.T) {
	require.Equal(t, "BaiyunMountain", StripWhitespace(" Baiyun \n\t Mountain "))
	require.Equal(t, "", StripWhitespace(" \n\t "))
}

func TestCollapseWhitespace(t *testing.T) {
	require.Equal(t, "Baiyun Mountain", CollapseWhitespace("  Baiyun \n\t Mountain "))
}

func TestSplitLabelCount(t *testing.T) {
	label, digits, ok := SplitLabelCount("attractions128")
	require.True(t, ok)
	require.Equal(t, "attractions", label)
	require.Equal(t, "128", digits)

	label, digits, ok = SplitLabelCount("景点33")
	require.True(t, ok)
	require.Equal(t, "景点", label)
	require.Equal(t, "33", digits)

	_, _, ok = SplitLabelCount("no trailing digits")
	require.False(t, ok)

	_, _, ok = SplitLabelCount("")
	require.False(t, ok)
}
