package controllers

import (
	"fmt"

	"yatrojana/pkg/utils"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes and validates the body, answering 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.HandleServiceError(c, fmt.Errorf("%w: %v", utils.ErrInvalidInput, err))
		return false
	}
	return true
}
