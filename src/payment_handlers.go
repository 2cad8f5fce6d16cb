package main

import (
	"net/http"
	"plannova/src/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// paymentHandlers are open to any authenticated caller.
func paymentHandlers(g *gin.RouterGroup, svc *services) *gin.RouterGroup {
	g.
		POST("/payments/initiate", func(ctx *gin.Context) {
			var body types.InitiatePaymentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				respondBadRequest(ctx, err)
				return
			}
			payment, err := svc.payments.Initiate(ctx, uuid.MustParse(body.EventID), uuid.MustParse(body.VendorID), body.Amount, body.Currency)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": payment})
		}).
		GET("/payments/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				respondBadRequest(ctx, err)
				return
			}
			payment, err := svc.payments.Get(ctx, uuid.MustParse(params.ID))
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": payment})
		})
	return g
}

func settlementHandlers(g *gin.RouterGroup, svc *services) *gin.RouterGroup {
	g.
		GET("/payments/pending", func(ctx *gin.Context) {
			payments, err := svc.payments.ListPending(ctx)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"payments": payments})
		}).
		POST("/payments/pay", func(ctx *gin.Context) {
			var body types.PayoutRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				respondBadRequest(ctx, err)
				return
			}
			payment, err := svc.payments.RequestPayout(ctx, uuid.MustParse(body.PaymentID))
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": payment})
		}).
		POST("/payments/process", func(ctx *gin.Context) {
			var body types.ProcessSettlementRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				respondBadRequest(ctx, err)
				return
			}
			payment, err := svc.payments.ProcessSettlement(ctx, uuid.MustParse(body.PaymentID), body.Outcome)
			if err != nil {
				respondError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": payment})
		})
	return g
}
