package get_services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle_ListsCatalog(t *testing.T) {
	rec := httptest.NewRecorder()
	Handle(rec, httptest.NewRequest(http.MethodGet, "/api/services", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ServicesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Services, 9)

	assert.Equal(t, Service{
		Key:             "corte_social",
		Name:            "Corte social",
		DurationMinutes: 30,
		Price:           35,
		CoveredByCommon: true,
	}, resp.Services[0])

	last := resp.Services[len(resp.Services)-1]
	assert.Equal(t, "corte_barba_sobrancelha", last.Key)
	assert.Equal(t, 50, last.DurationMinutes)
	assert.False(t, last.CoveredByCommon)
}
