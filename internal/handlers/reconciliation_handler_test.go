package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revenue-reconciliation-backend/internal/repository/memstore"
	"revenue-reconciliation-backend/internal/routes"
	"revenue-reconciliation-backend/internal/services/ingest"
	service "revenue-reconciliation-backend/internal/services/reconciliation"
)

const ledgerCSV = `invoice_id,customer_id,amount,status,created_at
inv_1,c1,500,paid,2024-12-01
inv_2,c2,100,paid,2025-01-02
`

const processorCSV = `id,customer,amount,status,created
ch_2,c2,100,succeeded,2025-01-02
`

type fixture struct {
	router    *gin.Engine
	ledger    string
	processor string
}

func setup(t *testing.T) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	ledger := filepath.Join(dir, "ledger.csv")
	processor := filepath.Join(dir, "processor.csv")
	require.NoError(t, os.WriteFile(ledger, []byte(ledgerCSV), 0o600))
	require.NoError(t, os.WriteFile(processor, []byte(processorCSV), 0o600))

	store := memstore.New()
	svc := service.NewReconciliationService(store, store, store, store, ingest.NewFileSource(), service.Options{})

	r := gin.New()
	routes.RegisterRoutes(r, svc)
	return fixture{router: r, ledger: ledger, processor: processor}
}

func (f fixture) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func (f fixture) createAudit(t *testing.T) string {
	t.Helper()
	w, body := f.do(t, http.MethodPost, "/api/audits", gin.H{
		"ledger_path":    f.ledger,
		"processor_path": f.processor,
	})
	require.Equal(t, http.StatusAccepted, w.Code)
	audit := body["audit"].(map[string]any)
	assert.Equal(t, "processing", audit["status"])
	return audit["id"].(string)
}

func TestHealth(t *testing.T) {
	f := setup(t)
	w, body := f.do(t, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestAuditLifecycle(t *testing.T) {
	f := setup(t)
	id := f.createAudit(t)

	w, body := f.do(t, http.MethodPost, "/api/audits/"+id+"/process", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["claimed"])
	assert.Equal(t, true, body["finalized"])
	assert.Equal(t, float64(100), body["progress"])

	w, body = f.do(t, http.MethodGet, "/api/audits/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	audit := body["audit"].(map[string]any)
	assert.Equal(t, "review", audit["status"])
	assert.EqualValues(t, 1, audit["total_anomalies"])

	w, body = f.do(t, http.MethodGet, "/api/audits/"+id+"/anomalies?category=missing_in_processor&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, false, body["has_more"])
	anomaly := items[0].(map[string]any)
	assert.Equal(t, "high", anomaly["confidence"])

	w, body = f.do(t, http.MethodPatch, "/api/anomalies/"+anomaly["id"].(string), gin.H{
		"status":       "dismissed",
		"performed_by": "ops@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dismissed", body["anomaly"].(map[string]any)["status"])

	w, _ = f.do(t, http.MethodPost, "/api/audits/"+id+"/publish", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = f.do(t, http.MethodPost, "/api/audits/"+id+"/publish", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = f.do(t, http.MethodDelete, "/api/audits/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = f.do(t, http.MethodGet, "/api/audits/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAudit_MissingFileIsRecordedOnAudit(t *testing.T) {
	f := setup(t)
	w, body := f.do(t, http.MethodPost, "/api/audits", gin.H{
		"ledger_path":    f.ledger,
		"processor_path": filepath.Join(filepath.Dir(f.ledger), "absent.csv"),
	})
	require.Equal(t, http.StatusAccepted, w.Code)
	audit := body["audit"].(map[string]any)
	assert.Equal(t, "error", audit["status"])
	assert.Contains(t, audit["error_message"], "absent.csv")
}

func TestBadRequests(t *testing.T) {
	f := setup(t)
	id := f.createAudit(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"malformed audit id", http.MethodGet, "/api/audits/nope", nil, http.StatusBadRequest},
		{"unknown audit", http.MethodGet, "/api/audits/" + uuid.NewString(), nil, http.StatusNotFound},
		{"missing processor path", http.MethodPost, "/api/audits", gin.H{"ledger_path": f.ledger}, http.StatusBadRequest},
		{"unknown preset", http.MethodPost, "/api/audits", gin.H{"ledger_path": f.ledger, "processor_path": f.processor, "preset": "huge"}, http.StatusBadRequest},
		{"unknown category", http.MethodGet, "/api/audits/" + id + "/anomalies?category=nope", nil, http.StatusBadRequest},
		{"bad limit", http.MethodGet, "/api/audits/" + id + "/anomalies?limit=x", nil, http.StatusBadRequest},
		{"bad cursor", http.MethodGet, "/api/audits/" + id + "/anomalies?cursor=x", nil, http.StatusBadRequest},
		{"publish while processing", http.MethodPost, "/api/audits/" + id + "/publish", nil, http.StatusConflict},
		{"unknown anomaly", http.MethodPatch, "/api/anomalies/" + uuid.NewString(), gin.H{"status": "resolved"}, http.StatusNotFound},
		{"invalid anomaly status", http.MethodPatch, "/api/anomalies/" + uuid.NewString(), gin.H{"status": "archived"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := f.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestOrganizationSettings(t *testing.T) {
	f := setup(t)
	path := "/api/organizations/" + uuid.NewString() + "/settings"

	w, body := f.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 4, body["resolved"].(map[string]any)["payoutGraceDays"])

	w, body = f.do(t, http.MethodPut, path, gin.H{
		"preset":    "startup",
		"overrides": gin.H{"chargebackFeeAmount": 20},
	})
	require.Equal(t, http.StatusOK, w.Code)
	resolved := body["resolved"].(map[string]any)
	assert.EqualValues(t, 3, resolved["payoutGraceDays"])
	assert.EqualValues(t, 20, resolved["chargebackFeeAmount"])

	w, _ = f.do(t, http.MethodPut, path, gin.H{"overrides": gin.H{"payoutGraceDays": -1}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
