package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func allow(c *gin.Context, methods string) {
	c.Header("allow", methods)
	c.Status(http.StatusNoContent)
}

func OptionsGet(c *gin.Context) {
	allow(c, "OPTIONS, GET")
}

func OptionsPost(c *gin.Context) {
	allow(c, "OPTIONS, POST")
}

func OptionsGetDelete(c *gin.Context) {
	allow(c, "OPTIONS, GET, DELETE")
}

func OptionsGetPut(c *gin.Context) {
	allow(c, "OPTIONS, GET, PUT")
}

func OptionsGetPost(c *gin.Context) {
	allow(c, "OPTIONS, GET, POST")
}

func OptionsGetPutPatchDelete(c *gin.Context) {
	allow(c, "OPTIONS, GET, PUT, PATCH, DELETE")
}
