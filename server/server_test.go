package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"utmkit/cache"
	"utmkit/config"
	"utmkit/idgenerator"
	"utmkit/propertyname"
	"utmkit/repository"
	"utmkit/utm"
)

const redirectOrigin = "http://go.example"

func newTestServer(t *testing.T) *httpexpect.Expect {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := repository.NewSQLiteRepo(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := zap.NewNop()
	db = cache.NewInMemory(db, logger)
	options := config.DefaultOptions()
	engine := NewRouter(App{
		DB:             db,
		IDGenerator:    idgenerator.New(db, logger),
		UTM:            utm.NewService(db, utm.Options{}, logger),
		Properties:     propertyname.NewGenerator(options),
		Options:        options,
		RedirectOrigin: redirectOrigin,
	}, logger)

	return httpexpect.WithConfig(httpexpect.Config{
		BaseURL: "http://utmkit.test",
		Client: &http.Client{
			Transport: httpexpect.NewBinder(engine),
			Jar:       httpexpect.NewJar(),
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		Reporter: httpexpect.NewAssertReporter(t),
		Printers: []httpexpect.Printer{
			httpexpect.NewDebugPrinter(t, true),
		},
	})
}

func Test_Server_Health(t *testing.T) {
	e := newTestServer(t)

	e.GET("/health").
		Expect().
		Status(http.StatusOK).JSON().Object().Value("status").IsEqual("ok")
	e.GET("/ready").
		Expect().
		Status(http.StatusOK).JSON().Object().Value("status").IsEqual("up")
}

func Test_Server_Index(t *testing.T) {
	e := newTestServer(t)

	body := e.GET("/").
		Expect().
		Status(http.StatusOK).
		ContentType("text/html").
		Body()
	body.Contains("Landing Page")
	body.Contains(`<option value="email" data-sources="hs-email,newsletter">`)
	body.Contains(`<option value="partner" data-sources="" data-custom="true">`)
	body.NotContains(`<option value="social" data-sources="linkedin,X" data-custom`)
}

func Test_Server_RequestID(t *testing.T) {
	e := newTestServer(t)

	e.GET("/health").
		WithHeader(requestIDHeader, "req-1").
		Expect().
		Header(requestIDHeader).IsEqual("req-1")
	e.GET("/health").
		Expect().
		Header(requestIDHeader).NotEmpty()
}

func Test_Server_BuildUTM(t *testing.T) {
	e := newTestServer(t)

	e.POST("/build-utm").
		WithFormField("base_url", "https://example.com").
		WithFormField("medium", "email").
		WithFormField("source", "newsletter").
		Expect().
		Status(http.StatusBadRequest).
		JSON().Object().Value("error").IsEqual("campaign_name is required")

	e.GET("/url-history").
		Expect().
		Status(http.StatusOK).
		JSON().Object().Value("history").Array().IsEmpty()

	for _, campaign := range []string{"Spring Launch", "Summer Sale"} {
		e.POST("/build-utm").
			WithFormField("base_url", "https://example.com/").
			WithFormField("campaign_name", campaign).
			WithFormField("medium", "social").
			WithFormField("source", "other").
			WithFormField("custom_source", "mastodon").
			WithFormField("content", "hero").
			Expect().
			Status(http.StatusOK).
			JSON().Object().Value("url").String().HasPrefix("https://example.com?utm_campaign=")
		time.Sleep(10 * time.Millisecond)
	}

	history := e.GET("/url-history").
		Expect().
		Status(http.StatusOK).
		JSON().Object().Value("history").Array()
	history.Length().IsEqual(2)
	latest := history.Value(0).Object()
	latest.Value("campaign_name").IsEqual("summer-sale")
	latest.Value("source").IsEqual("mastodon")
	latest.Value("content").IsEqual("hero")
	latest.Value("final_url").IsEqual("https://example.com?utm_campaign=summer-sale&utm_medium=social&utm_source=mastodon&utm_content=hero")
}

func Test_Server_ShortenAndRedirect(t *testing.T) {
	e := newTestServer(t)
	target := "https://example.com/landing?utm_campaign=spring"

	first := e.POST("/shorten").
		WithFormField("url", target).
		Expect().
		Status(http.StatusOK).
		JSON().Object()
	first.Value("short_code").String().Length().IsEqual(6)
	shortCode := first.Value("short_code").String().Raw()
	first.Value("short_url").IsEqual(redirectOrigin + "/" + shortCode)

	e.POST("/shorten").
		WithJSON(map[string]string{"url": target}).
		Expect().
		Status(http.StatusOK).
		JSON().Object().Value("short_code").IsEqual(shortCode)

	for i := 0; i < 3; i++ {
		e.GET("/" + shortCode).
			Expect().
			Status(http.StatusFound).
			Header("Location").IsEqual(target)
	}

	stats := e.GET("/links/" + shortCode).
		Expect().
		Status(http.StatusOK).
		JSON().Object()
	stats.Value("clicks").IsEqual(3)
	stats.Value("original_url").IsEqual(target)

	e.GET("/zzzzzz").Expect().Status(http.StatusNotFound)
	e.GET("/links/zzzzzz").Expect().Status(http.StatusNotFound)
	e.POST("/shorten").WithFormField("url", "not-a-url").
		Expect().
		Status(http.StatusBadRequest).
		JSON().Object().Value("error").IsEqual("Invalid URL format")
	e.POST("/shorten").WithFormField("url", "https://example.com/"+strings.Repeat("a", idgenerator.MaxURLLength)).
		Expect().
		Status(http.StatusBadRequest).
		JSON().Object().Value("error").IsEqual("url must be at most 2048 characters")
}

func Test_Server_BuildUTM_customMedium(t *testing.T) {
	e := newTestServer(t)

	e.POST("/build-utm").
		WithFormField("base_url", "https://example.com").
		WithFormField("campaign_name", "spring").
		WithFormField("medium", "partner").
		WithFormField("source", "other").
		WithFormField("custom_source", "acme").
		Expect().
		Status(http.StatusOK).
		JSON().Object().Value("url").IsEqual("https://example.com?utm_campaign=spring&utm_medium=partner&utm_source=acme")
}

func Test_Server_BuildUTM_shorten(t *testing.T) {
	e := newTestServer(t)

	obj := e.POST("/build-utm").
		WithFormField("base_url", "https://example.com").
		WithFormField("campaign_name", "spring").
		WithFormField("medium", "email").
		WithFormField("source", "newsletter").
		WithFormField("shorten", "true").
		Expect().
		Status(http.StatusOK).
		JSON().Object()
	shortURL := obj.Value("shortened_url").String().HasPrefix(redirectOrigin + "/").Raw()

	e.GET(shortURL[len(redirectOrigin):]).
		Expect().
		Status(http.StatusFound).
		Header("Location").IsEqual("https://example.com?utm_campaign=spring&utm_medium=email&utm_source=newsletter")
}

func Test_Server_PropertyName(t *testing.T) {
	e := newTestServer(t)

	e.POST("/generate-property-name").
		WithFormField("property_types[]", "LP").
		WithFormField("property_types[]", "EM").
		WithFormField("description", "Spring Launch").
		WithFormField("event_date", "2024-03-01").
		Expect().
		Status(http.StatusOK).
		JSON().Object().Value("property_names").IsEqual([]string{
		"20240301 | LP | Spring-Launch",
		"20240301 | EM | Spring-Launch",
	})
}

func Test_Server_Options(t *testing.T) {
	e := newTestServer(t)

	obj := e.GET("/options").Expect().Status(http.StatusOK).JSON().Object()
	obj.Value("regions").Array().Length().IsEqual(4)
	obj.Value("property_types").Array().Length().IsEqual(8)
}

func Test_withTimeout(t *testing.T) {
	handler := withTimeout(func(c *gin.Context) {
		select {
		case <-c.Request.Context().Done():
			c.String(http.StatusRequestTimeout, c.Request.Context().Err().Error())
		case <-time.After(time.Second):
			c.String(http.StatusOK, "too late")
		}
	}, 10*time.Millisecond)

	r := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(r)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)

	assert.Equal(t, http.StatusRequestTimeout, r.Code)
	assert.Equal(t, context.DeadlineExceeded.Error(), r.Body.String())
}
