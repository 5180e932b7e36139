package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadPack(t *testing.T) {
	{
		// Happy path.
		data := strings.Join([]string{
			"q1\thow fast is a vpn\td1\tvpn speed explained\t0",
			"q1\thow fast is a vpn\td2\tincrease internet speed\t1",
			"q2\twhat is dns\td3\tdns basics\t1",
		}, "\n")

		pack, err := ReadPack(strings.NewReader(data))
		assert.NoError(t, err)
		assert.Equal(t, 3, pack.Len())

		batch, err := pack.Unpack()
		assert.NoError(t, err)
		assert.Equal(t, []any{"q1", "q1", "q2"}, batch.Features[ColumnIDLeft])
		assert.Equal(t, []any{"vpn speed explained", "increase internet speed", "dns basics"}, batch.Features[ColumnTextRight])
		assert.Equal(t, []float64{0, 1, 1}, batch.Labels)
	}
	{
		// Empty input.
		pack, err := ReadPack(strings.NewReader(""))
		assert.NoError(t, err)
		assert.Equal(t, 0, pack.Len())
	}
	{
		// Label that isn't a number.
		_, err := ReadPack(strings.NewReader("q1\ta\td1\tb\trelevant"))
		assert.ErrorContains(t, err, `failed to parse label "relevant"`)
	}
	{
		// Wrong column count.
		_, err := ReadPack(strings.NewReader("q1\ta\td1"))
		assert.ErrorContains(t, err, "failed to read record")
	}
}
