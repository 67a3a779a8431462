package valuecodec

import (
	"testing"
	"time"

	"github.com/orcgo/orccore/rleint"
	"github.com/stretchr/testify/require"
)

// Property 7: encoded nanos 0x0D = (1<<3)|5 -> k=5, rest=1, multiplier 10^5.
func TestDecodeNanos_TrailingZeroVector(t *testing.T) {
	secondary := rleint.EncodeV2([]int64{0x0D}, false)

	got, err := DecodeNanos(secondary, 1)
	require.NoError(t, err)
	require.Equal(t, []int64{100000}, got)
}

func TestEncodeDecodeNanos_RoundTrip(t *testing.T) {
	values := []int64{0, 1, 100, 123000000, 999999999, 500000000, 7}

	data := EncodeNanos(values)
	got, err := DecodeNanos(data, len(values))
	require.NoError(t, err)
	require.Equal(t, values, got)
}

func TestEncodeDecodeTimestampSeconds_RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 1000000, -1000000}

	data := EncodeTimestampSeconds(values)
	got, err := DecodeTimestampSeconds(data, len(values))
	require.NoError(t, err)
	require.Equal(t, values, got)
}

func TestSecondsSinceEpoch(t *testing.T) {
	require.Equal(t, int64(0), SecondsSinceEpoch(Epoch))

	later := Epoch.Add(time.Hour)
	require.Equal(t, int64(3600), SecondsSinceEpoch(later))

	before := Epoch.Add(-time.Hour)
	require.Equal(t, int64(-3600), SecondsSinceEpoch(before))
}

func TestTimeFromParts(t *testing.T) {
	got := TimeFromParts(3600, 500)
	want := Epoch.Add(time.Hour).Add(500 * time.Nanosecond)
	require.True(t, got.Equal(want))
}
