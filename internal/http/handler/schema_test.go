package handler_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hourline.app/server/internal/http/dto"
	"hourline.app/server/internal/http/handler"
	"hourline.app/server/internal/model"
)

var _ = Describe("SchemaHandler", func() {
	var router *gin.Engine

	BeforeEach(func() {
		router = gin.New()
		h := handler.NewSchemaHandler("/api/v1/rpc", []handler.ProcedureDoc{
			{Name: "entries.start", Input: &dto.StartEntryRequest{}, Permission: model.PermEntriesWrite, Workspace: true},
			{Name: "clients.create", Input: &dto.ClientRequest{}, Permission: model.PermClientsManage, Workspace: true},
			{Name: "workspaces.list"},
		})
		router.GET("/schema", h.List)
		router.GET("/schema/:procedure", h.Get)
	})

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	It("lists procedures sorted by name", func() {
		w := get("/schema")

		Expect(w.Code).To(Equal(http.StatusOK))
		procedures := decodeJSON(w)["procedures"].([]any)
		Expect(procedures).To(HaveLen(3))
		Expect(procedures[0]).To(HaveKeyWithValue("name", "clients.create"))
		Expect(procedures[0]).To(HaveKeyWithValue("path", "/api/v1/rpc/clients.create"))
		Expect(procedures[2]).To(HaveKeyWithValue("has_input", false))
	})

	It("returns the input schema of a procedure", func() {
		w := get("/schema/clients.create")

		Expect(w.Code).To(Equal(http.StatusOK))
		resp := decodeJSON(w)
		Expect(resp["permission"]).To(Equal("clients:manage"))
		input := resp["input"].(map[string]any)
		Expect(input["type"]).To(Equal("object"))
		Expect(input["properties"]).To(HaveKey("name"))
		Expect(input["properties"]).To(HaveKey("currency"))
	})

	It("describes procedures without input as an empty object", func() {
		w := get("/schema/workspaces.list")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decodeJSON(w)["input"]).To(HaveKeyWithValue("type", "object"))
	})

	It("returns 404 for unknown procedures", func() {
		Expect(get("/schema/nope.nothing").Code).To(Equal(http.StatusNotFound))
	})
})
