package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"utmkit/idgenerator"
	"utmkit/models"
	"utmkit/utm"
)

const historyTimeLayout = "2006-01-02 15:04:05"

type buildReqData struct {
	utm.Params
	Shorten bool `form:"shorten" json:"shorten"`
}

type historyEntry struct {
	BaseURL      string  `json:"base_url"`
	CampaignName string  `json:"campaign_name"`
	Medium       string  `json:"medium"`
	Source       string  `json:"source"`
	Content      *string `json:"content"`
	CreatedAt    string  `json:"created_at"`
	FinalURL     string  `json:"final_url"`
}

func toHistoryEntry(r models.UtmBuild) historyEntry {
	return historyEntry{
		BaseURL:      r.BaseURL,
		CampaignName: r.CampaignName,
		Medium:       r.Medium,
		Source:       r.Source,
		Content:      r.Content,
		CreatedAt:    r.CreatedAt.UTC().Format(historyTimeLayout),
		FinalURL:     r.FinalURL,
	}
}

type UtmController struct {
	Service        *utm.Service
	IDGenerator    idgenerator.IDGenerator
	Log            *zap.Logger
	RedirectOrigin string
}

func (u UtmController) Build(c *gin.Context) {
	var req buildReqData
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, u.Log, err)
		return
	}

	res, err := u.Service.Build(c.Request.Context(), req.Params)
	if err != nil {
		respondError(c, u.Log, err)
		return
	}

	resp := gin.H{"url": res.FinalURL}
	if req.Shorten {
		link, err := u.IDGenerator.Get(c.Request.Context(), res.FinalURL)
		if err != nil {
			respondError(c, u.Log, err)
			return
		}
		resp["shortened_url"] = idgenerator.ShortURL(u.RedirectOrigin, link.ShortCode)
	}
	c.JSON(http.StatusOK, resp)
}

func (u UtmController) History(c *gin.Context) {
	records, err := u.Service.History(c.Request.Context())
	if err != nil {
		respondError(c, u.Log, err)
		return
	}
	history := make([]historyEntry, 0, len(records))
	for _, r := range records {
		history = append(history, toHistoryEntry(r))
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}
