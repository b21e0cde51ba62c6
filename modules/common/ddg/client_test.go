package ddg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, imagesHandler http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><script>vqd="3-123456789";</script></html>`))
	})
	mux.HandleFunc("/i.js", imagesHandler)
	return httptest.NewServer(mux)
}

func TestImagesReturnsResults(t *testing.T) {
	var gotVqd, gotSafe, gotLayout string

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotVqd = r.URL.Query().Get("vqd")
		gotSafe = r.URL.Query().Get("p")
		gotLayout = r.URL.Query().Get("f")
		w.Write([]byte(`{"results":[
			{"image":"http://example.com/a.jpg","title":"a"},
			{"image":"http://example.com/b.jpg","title":"b"},
			{"image":42,"title":"broken"}
		]}`))
	})
	defer server.Close()

	client := NewClient(server.URL)
	results, err := client.Images(context.Background(), "red dress", SearchOptions{
		Region:     "wt-wt",
		SafeSearch: "moderate",
		Layout:     "Square",
	})

	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, "3-123456789", gotVqd)
	require.Equal(t, "1", gotSafe)
	require.Equal(t, ",,,layout:Square", gotLayout)
	require.Equal(t, "http://example.com/a.jpg", results[0].Image)

	// the malformed record survives decoding; validation is the caller's job
	_, isString := results[2].Image.(string)
	require.False(t, isString)
}

func TestImagesRespectsMaxResults(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[
			{"image":"http://example.com/1.jpg"},
			{"image":"http://example.com/2.jpg"},
			{"image":"http://example.com/3.jpg"}
		]}`))
	})
	defer server.Close()

	client := NewClient(server.URL)
	results, err := client.Images(context.Background(), "belt accessory", SearchOptions{MaxResults: 1})

	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestImagesFailsWithoutToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>no token here</html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Images(context.Background(), "red dress", SearchOptions{})
	require.Error(t, err)
}

func TestImagesFailsOnServerError(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Images(context.Background(), "red dress", SearchOptions{})
	require.Error(t, err)
}

func TestSafeSearchParam(t *testing.T) {
	require.Equal(t, "1", safeSearchParam("moderate"))
	require.Equal(t, "1", safeSearchParam(""))
	require.Equal(t, "-1", safeSearchParam("off"))
	require.Equal(t, "-1", safeSearchParam("OFF"))
}
