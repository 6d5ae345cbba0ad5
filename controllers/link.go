package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"utmkit/apperrors"
	"utmkit/idgenerator"
	"utmkit/repository"
)

type shortenReqData struct {
	URL string `form:"url" json:"url"`
}

type LinkController struct {
	DB             repository.Repository
	IDGenerator    idgenerator.IDGenerator
	Log            *zap.Logger
	RedirectOrigin string
}

func (l LinkController) Shorten(c *gin.Context) {
	var req shortenReqData
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, l.Log, err)
		return
	}

	link, err := l.IDGenerator.Get(c.Request.Context(), req.URL)
	if err != nil {
		respondError(c, l.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"short_code": link.ShortCode,
		"short_url":  idgenerator.ShortURL(l.RedirectOrigin, link.ShortCode),
	})
}

// Redirect counts the visit and sends the client to the original URL.
func (l LinkController) Redirect(c *gin.Context) {
	code := c.Param("short_code")
	if err := l.IDGenerator.Validate(code); err != nil {
		respondError(c, l.Log, apperrors.NotFound("short link"))
		return
	}

	url, err := l.DB.Resolve(c.Request.Context(), code)
	if errors.Is(err, repository.ErrRecordNotFound) {
		err = apperrors.NotFound("short link")
	}
	if err != nil {
		respondError(c, l.Log, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

func (l LinkController) Stats(c *gin.Context) {
	code := c.Param("short_code")
	if err := l.IDGenerator.Validate(code); err != nil {
		respondError(c, l.Log, apperrors.NotFound("short link"))
		return
	}

	link, err := l.DB.GetLink(c.Request.Context(), code)
	if errors.Is(err, repository.ErrRecordNotFound) {
		err = apperrors.NotFound("short link")
	}
	if err != nil {
		respondError(c, l.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"short_code":   link.ShortCode,
		"original_url": link.OriginalURL,
		"clicks":       link.Clicks,
		"created_at":   link.CreatedAt.UTC().Format(historyTimeLayout),
	})
}
