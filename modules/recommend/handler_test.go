package recommend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestHandler() *Handler {
	svc := NewServiceWith(&stubTextGen{degraded: true}, &stubImages{}, 5)
	return NewHandler(svc)
}

func TestHandleRecommendBadJSON(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/recommend", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()

	h.HandleRecommend(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRecommendDegradedStillComplete(t *testing.T) {
	h := newTestHandler()

	body := `{"color":"red","gender":"female","type":"dress","occasion":"party","style":"elegant"}`
	req := httptest.NewRequest(http.MethodPost, "/api/recommend", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleRecommend(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response RecommendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, "red elegant dress for party female", response.Query)
	require.Len(t, response.ImageURLs, 5)
	require.NotEmpty(t, response.Description)
	require.Nil(t, response.Accessories)
}

func TestHandleAccessories(t *testing.T) {
	svc := NewServiceWith(
		&stubTextGen{accessories: "A silver watch works well."},
		&stubImages{accessory: map[string]string{"watch": "http://example.com/w.jpg"}},
		5,
	)
	h := NewHandler(svc)

	body := `{"preferences":"{\"color\":\"red\",\"gender\":\"female\"}","items":["watch","belt"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/accessories", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleAccessories(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response AccessoriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Equal(t, "A silver watch works well.", response.Text)
	require.Len(t, response.Images, 1)
	require.Equal(t, "red female", response.Outfit)
}

func TestHandleAccessoriesBadJSON(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/accessories", strings.NewReader("not json"))
	rec := httptest.NewRecorder()

	h.HandleAccessories(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
