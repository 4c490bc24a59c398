package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bulkgen/internal/config"
	"bulkgen/internal/generator"
	"bulkgen/internal/logger"
	"bulkgen/internal/sheet"
)

// templateKinds maps URL kind values to template file names.
var templateKinds = map[string]string{
	"campaign": "campaign",
	"ad_group": "ad_group",
	"ad-group": "ad_group",
}

func templateLabel(file string) string {
	if file == "campaign" {
		return generator.TemplateCampaign
	}
	return generator.TemplateAdGroup
}

type TemplatesHandler struct {
	config *config.Config
	logger *logger.Logger
}

func NewTemplatesHandler(cfg *config.Config, logger *logger.Logger) *TemplatesHandler {
	return &TemplatesHandler{
		config: cfg,
		logger: logger,
	}
}

// Parts lists the name-template builder catalogs.
func (h *TemplatesHandler) Parts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": generator.TemplateCatalogs()})
}

// Preview renders a template, or a builder label list, against example
// values so the form can echo the resulting name live.
func (h *TemplatesHandler) Preview(c *gin.Context) {
	var req struct {
		Template string   `json:"template"`
		Labels   []string `json:"labels"`
		Kind     string   `json:"kind"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	template := req.Template
	if template == "" && len(req.Labels) > 0 {
		template = generator.BuildTemplate(req.Labels)
	}

	kind := generator.TemplateCampaign
	if file, ok := templateKinds[req.Kind]; ok {
		kind = templateLabel(file)
	}

	resp := gin.H{
		"template": template,
		"preview":  generator.PreviewName(template),
		"valid":    true,
	}
	if check := generator.CheckNameTemplate(template, kind); check != nil {
		resp["valid"] = false
		resp["code"] = check.Code
		resp["message"] = check.Message
	}

	c.JSON(http.StatusOK, resp)
}

// Saved returns the stored template for a kind, if any.
func (h *TemplatesHandler) Saved(c *gin.Context) {
	file, ok := templateKinds[c.Param("kind")]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown template kind"})
		return
	}

	template := sheet.LoadTemplate(h.config.TemplateDir, file)
	if template == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No saved template"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"kind": c.Param("kind"), "template": template})
}

// Save persists a template so the form can prefill it next session.
func (h *TemplatesHandler) Save(c *gin.Context) {
	var req struct {
		Kind     string `json:"kind" binding:"required"`
		Template string `json:"template" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, ok := templateKinds[req.Kind]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown template kind"})
		return
	}

	if check := generator.CheckNameTemplate(req.Template, templateLabel(file)); check != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": check.Message, "code": check.Code})
		return
	}

	if err := sheet.SaveTemplate(h.config.TemplateDir, file, req.Template); err != nil {
		h.logger.Error("Failed to save template: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save template"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"kind": req.Kind, "template": req.Template})
}
