package main

import (
	"net/http"
	"plannova/src/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func vendorHandlers(g *gin.RouterGroup, svc *services) *gin.RouterGroup {
	list := func(ctx *gin.Context) {
		vendors, err := svc.vendors.List(ctx)
		if err != nil {
			respondError(ctx, err)
			return
		}
		items := make([]types.APIResponseListItem, 0, len(vendors))
		for _, v := range vendors {
			items = append(items, types.APIResponseListItem{ID: v.ID.String(), Data: v})
		}
		ctx.JSON(http.StatusOK, items)
	}
	approve := func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			respondBadRequest(ctx, err)
			return
		}
		vendor, err := svc.vendors.Approve(ctx, uuid.MustParse(params.ID))
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"data": vendor})
	}
	reject := func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			respondBadRequest(ctx, err)
			return
		}
		vendor, err := svc.vendors.Reject(ctx, uuid.MustParse(params.ID))
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"data": vendor})
	}

	g.
		GET("/vendor/getAllVendor", list).
		PUT("/vendor/approve/:id", approve).
		PUT("/vendor/reject/:id", reject)
	// the admin frontend still calls the misspelled paths
	g.
		GET("/vender/getAllVender", list).
		PUT("/vender/approve/:id", approve).
		PUT("/vender/reject/:id", reject)
	return g
}
