package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"utmkit/config"
)

// IndexTemplate is the name the tool page is registered under.
const IndexTemplate = "index.tmpl"

type ToolController struct {
	Options *config.Options
}

func (t ToolController) Index(c *gin.Context) {
	c.HTML(http.StatusOK, IndexTemplate, gin.H{
		"Mediums":       t.Options.Mediums(),
		"PropertyTypes": t.Options.PropertyTypes(),
	})
}

// ListOptions serves the dropdown contents for clients that render their own
// form.
func (t ToolController) ListOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"mediums":        t.Options.Mediums(),
		"property_types": t.Options.PropertyTypes(),
		"regions":        t.Options.Regions(),
	})
}
