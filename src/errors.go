package main

import (
	"errors"
	"log"
	"net/http"
	"plannova/src/types"

	"github.com/gin-gonic/gin"
)

func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrInvalidTransition):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrInvalidAmount):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("[%s %s] %s\n", ctx.Request.Method, ctx.FullPath(), err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func respondBadRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
