package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// badInput is the uniform response for every validation failure.
func badInput(c *gin.Context) {
	c.JSON(http.StatusLengthRequired, errorResponse{Message: "incorrect inputs"})
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, errorResponse{Message: "internal server error"})
}
