// internal/server/router.go
//
// 路由註冊。表單介面掛在根路徑，JSON API 掛在 /api/v1。
package server

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Router 建立並回傳整個 HTTP 處理鏈。
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(TraceID())
	r.Use(Metrics())
	r.Use(RequestLogger(s.logger))
	r.SetHTMLTemplate(pages)

	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 表單介面
	r.GET("/", s.home)
	r.POST("/login", s.login)
	r.POST("/register", s.register)
	r.POST("/select", s.selectAccount)
	r.POST("/logout", s.logout)

	form := r.Group("/bank", s.requireSession)
	form.GET("", s.form)
	form.POST("/:action", s.formAction)

	// JSON API
	api := r.Group("/api/v1")
	api.POST("/accounts", s.createAccount)

	// 有儲存檔時以下路由需要帳號密碼標頭
	auth := api.Group("", s.requireCredential)
	auth.GET("/accounts", s.listAccounts)
	auth.GET("/accounts/:id", s.getAccount)
	auth.POST("/accounts/:id/deposit", s.deposit)
	auth.POST("/accounts/:id/withdraw", s.withdraw)
	auth.POST("/accounts/:id/topup", s.topUp)
	auth.POST("/transfer", s.transfer)

	return r
}
