package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"utmkit/propertyname"
)

type PropertyController struct {
	Generator *propertyname.Generator
	Log       *zap.Logger
}

func (p PropertyController) Generate(c *gin.Context) {
	var req propertyname.Request
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, p.Log, err)
		return
	}

	names, err := p.Generator.Generate(req)
	if err != nil {
		respondError(c, p.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property_names": names})
}
