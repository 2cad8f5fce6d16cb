package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func eventHandlers(g *gin.RouterGroup, svc *services) *gin.RouterGroup {
	g.
		GET("/event/getAllEvents", func(ctx *gin.Context) {
			events, err := svc.dashboard.Events(ctx)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"events": events})
		}).
		GET("/admin/dashboard", func(ctx *gin.Context) {
			summary, err := svc.dashboard.Summary(ctx)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, summary)
		})
	return g
}
