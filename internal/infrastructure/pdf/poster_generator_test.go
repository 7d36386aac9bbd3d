package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuPoster_ProducesPDF(t *testing.T) {
	out, err := NewPosterGenerator().MenuPoster("La Esquina", "https://menuqr.app/menu/la-esquina")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMenuPoster_RequiresURL(t *testing.T) {
	_, err := NewPosterGenerator().MenuPoster("La Esquina", "")
	assert.Error(t, err)
}
