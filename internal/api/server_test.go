package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pbaille/digest/internal/classifier"
	"github.com/pbaille/digest/internal/render"
	"github.com/pbaille/digest/internal/reorder"
)

const testRunID = "3f1c2a9e-0000-4000-8000-000000000001"

func newTestServer() *httptest.Server {
	c := classifier.Default()
	s := New(c, reorder.New(c, reorder.DefaultVerbatimMarkers), render.FreshLayout, ":0", testRunID, zap.NewNop())
	return httptest.NewServer(s.Handler())
}

func post(t *testing.T, url, contentType, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestHealth(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestClassify(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, out := post(t, ts.URL+"/api/classify", "application/json", `{"text":"某大学举办开学典礼"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "高校", out["category"])
	assert.Equal(t, true, out["matched"])

	_, out = post(t, ts.URL+"/api/classify", "application/json", `{"text":"天气预报"}`)
	assert.Equal(t, "其他", out["category"])
	assert.Equal(t, false, out["matched"])

	resp, out = post(t, ts.URL+"/api/classify", "application/json", `{"text":"  "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "text is required", out["error"])

	resp, _ = post(t, ts.URL+"/api/classify", "application/json", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSplit(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, out := post(t, ts.URL+"/api/split", "text/plain", "导语\n\n【甲】\na\n\nb\n")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testRunID, out["run_id"])

	doc := out["document"].(map[string]interface{})
	assert.Equal(t, "导语", doc["header"])
	sections := doc["sections"].([]interface{})
	require.Len(t, sections, 1)
	section := sections[0].(map[string]interface{})
	assert.Equal(t, "甲", section["label"])
	assert.Equal(t, []interface{}{"a", "b"}, section["entries"])
}

func TestReorderEndpoint(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, out := post(t, ts.URL+"/api/reorder", "text/plain", "【舆情速览】\n天气\n\n某小学新闻\n")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "【舆情速览】\n\n某小学新闻\n\n天气\n", out["text"])
	assert.Len(t, out["sections"], 1)
}

func TestSortEndpoint(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, out := post(t, ts.URL+"/api/sort", "text/plain", "日报\n\n【甲】\nlow score=1\n\nhigh score=5\n")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "日报\n\n【甲】共 2 条\n\nhigh score=5\n\nlow score=1\n\n", out["text"])
	assert.Equal(t, testRunID, out["run_id"])
}

func TestTransformRejectsDocumentsWithoutSections(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	for _, path := range []string{"/api/split", "/api/reorder", "/api/sort"} {
		resp, out := post(t, ts.URL+path, "text/plain", "plain text only")
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, path)
		assert.Contains(t, out["error"], "no sections found", path)
	}

	resp, out := post(t, ts.URL+"/api/split", "text/plain", string([]byte{0xff, 0xfe}))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "body is not valid utf-8", out["error"])
}

func TestNewGeneratesRunID(t *testing.T) {
	c := classifier.Default()
	s := New(c, reorder.New(c, nil), render.FreshLayout, ":0", "", nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	_, first := post(t, ts.URL+"/api/split", "text/plain", "【甲】\na\n")
	_, second := post(t, ts.URL+"/api/split", "text/plain", "【乙】\nb\n")

	id, ok := first["run_id"].(string)
	require.True(t, ok)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, second["run_id"], "one server, one run")
}
