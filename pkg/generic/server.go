package generic

import "github.com/gin-gonic/gin"

// Server carries the router and listen settings shared by the web layer.
type Server struct {
	Router  *gin.Engine
	Port    string
	Methods []string
}
