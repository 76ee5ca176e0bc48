package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	auction "auction-marketplace/internal/auctionService"
	auth "auction-marketplace/internal/authService"
	model "auction-marketplace/internal/models"
	"auction-marketplace/internal/repository"
	"auction-marketplace/internal/server"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const testSigningSecret = "integration-test-secret"

// SetupTestRouter initializes the router with the in-memory repository
// for integration testing.
func SetupTestRouter() (*gin.Engine, *repository.MemoryRepo) {
	gin.SetMode(gin.TestMode)
	repo := repository.NewMemoryRepo()
	authSvc := auth.NewAuthService(repo, testSigningSecret, time.Hour, bcrypt.MinCost)
	auctionSvc := auction.NewAuctionService(repo)
	router := server.SetupRouter(authSvc, auctionSvc, repo)
	return router, repo
}

// SetupTestRouterWithAuctions initializes the router and seeds the repo
// with auction items.
func SetupTestRouterWithAuctions(t *testing.T, items ...model.AuctionItem) *gin.Engine {
	t.Helper()
	router, repo := SetupTestRouter()
	for _, item := range items {
		if _, err := repo.CreateAuction(context.Background(), item); err != nil {
			t.Fatalf("failed to seed auction %s: %v", item.ID, err)
		}
	}
	return router
}

// ExecuteRequest executes an HTTP request on the given router and returns
// the response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ParseObject unmarshals a JSON object response body.
func ParseObject(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
	return resp
}

// ParseArray unmarshals a JSON array response body.
func ParseArray(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var resp []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
	return resp
}
