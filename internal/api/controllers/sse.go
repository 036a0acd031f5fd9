package controllers

import "github.com/gin-gonic/gin"

// prepareSSE sets the headers proxies need to pass an event stream through unbuffered.
func prepareSSE(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
}
