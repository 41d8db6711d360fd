package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"

	"hourline.app/server/internal/http/middleware"
	"hourline.app/server/internal/model"
)

const (
	testSessionID   int64 = 42
	testUserID      int64 = 7
	testWorkspaceID int64 = 100
)

func testUser() *model.User {
	return &model.User{ID: testUserID, Name: "Ada Lovelace", Email: "ada@example.com"}
}

func testMembership(role model.Role) *model.Membership {
	return &model.Membership{
		Workspace: model.Workspace{
			ID:       testWorkspaceID,
			OwnerID:  testUserID,
			Name:     "Acme",
			Slug:     "acme",
			Currency: "USD",
		},
		Role:        role,
		Permissions: model.PermissionsFor(role),
	}
}

// rpcChain mirrors what the router puts in front of a workspace scoped procedure.
func rpcChain(auth *mockAuthService, resolver *mockResolver, permission model.Permission, h gin.HandlerFunc) []gin.HandlerFunc {
	chain := []gin.HandlerFunc{
		middleware.RequireAuth(auth, middleware.CookieConfig{}),
		middleware.RequireWorkspace(resolver),
	}
	if permission != "" {
		chain = append(chain, middleware.RequirePermission(permission))
	}
	return append(chain, h)
}

// callRPC posts body as JSON with a valid session for the acme workspace.
func callRPC(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionIDHeader, strconv.FormatInt(testSessionID, 10))
	req.Header.Set(middleware.WorkspaceHeader, "acme")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(w *httptest.ResponseRecorder) map[string]any {
	var resp map[string]any
	Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
	return resp
}
