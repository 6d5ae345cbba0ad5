package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utmkit/config"
)

func TestToolController_ListOptions(t *testing.T) {
	tc := ToolController{Options: config.DefaultOptions()}

	r := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(r)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/options", nil)
	tc.ListOptions(ctx)

	assert.Equal(t, http.StatusOK, r.Code)
	var got struct {
		Mediums       []config.Medium       `json:"mediums"`
		PropertyTypes []config.PropertyType `json:"property_types"`
		Regions       []string              `json:"regions"`
	}
	require.NoError(t, json.Unmarshal(r.Body.Bytes(), &got))
	assert.Equal(t, config.DefaultOptions().Mediums(), got.Mediums)
	assert.Equal(t, "LP", got.PropertyTypes[0].Code)
	assert.Equal(t, []string{"NA", "EMEA", "APAC", "LATAM"}, got.Regions)
}
