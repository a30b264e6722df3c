package server

import "github.com/gin-gonic/gin"

// response is the envelope every endpoint replies with. Code is 0 on
// success and mirrors the HTTP status on failure.
type response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func success(c *gin.Context, data any) {
	c.JSON(200, response{Code: 0, Message: "success", Data: data})
}

func fail(c *gin.Context, code int, message string) {
	c.JSON(code, response{Code: code, Message: message})
}
