package main

import (
	"net/http"
	"plannova/src/types"

	"github.com/gin-gonic/gin"
)

func adminHandlers(g *gin.RouterGroup, svc *services) *gin.RouterGroup {
	g.
		GET("/user/getAllUser", func(ctx *gin.Context) {
			users, err := svc.store.ListUsers(ctx)
			if err != nil {
				respondError(ctx, err)
				return
			}
			items := make([]types.APIResponseListItem, 0, len(users))
			for _, u := range users {
				items = append(items, types.APIResponseListItem{ID: u.ID.String(), Data: u})
			}
			ctx.JSON(http.StatusOK, items)
		}).
		GET("/admin/getAllServices", func(ctx *gin.Context) {
			services, err := svc.store.ListServices(ctx)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"services": services})
		})
	return g
}
