package handler

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"

	"hourline.app/server/internal/model"
)

// ProcedureDoc describes one RPC procedure for the schema endpoints.
type ProcedureDoc struct {
	Name       string
	Input      any
	Permission model.Permission
	Workspace  bool
}

type procedureSummary struct {
	Name       string           `json:"name"`
	Path       string           `json:"path"`
	Permission model.Permission `json:"permission,omitempty"`
	Workspace  bool             `json:"workspace"`
	HasInput   bool             `json:"has_input"`
}

type SchemaHandler struct {
	procedures map[string]ProcedureDoc
	summaries  []procedureSummary
}

func NewSchemaHandler(prefix string, procedures []ProcedureDoc) *SchemaHandler {
	h := &SchemaHandler{procedures: make(map[string]ProcedureDoc, len(procedures))}
	for _, p := range procedures {
		h.procedures[p.Name] = p
		h.summaries = append(h.summaries, procedureSummary{
			Name:       p.Name,
			Path:       prefix + "/" + p.Name,
			Permission: p.Permission,
			Workspace:  p.Workspace,
			HasInput:   p.Input != nil,
		})
	}
	sort.Slice(h.summaries, func(i, j int) bool { return h.summaries[i].Name < h.summaries[j].Name })
	return h
}

func (h *SchemaHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"procedures": h.summaries})
}

func (h *SchemaHandler) Get(c *gin.Context) {
	name := c.Param("procedure")
	p, ok := h.procedures[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown procedure", "code": CodeNotFound})
		return
	}

	var input any = map[string]any{"type": "object"}
	if p.Input != nil {
		input = GenerateSchema(p.Input)
	}
	c.JSON(http.StatusOK, gin.H{
		"procedure":  p.Name,
		"permission": p.Permission,
		"input":      input,
	})
}

// GenerateSchema reflects the JSON schema of a procedure input value.
func GenerateSchema(v any) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return reflector.Reflect(v)
}
