package interests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"mutuals/auth"
	"mutuals/jsonrpc2"
	"mutuals/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/juju/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
)

var Logger logr.Logger = logr.Discard()

type InterestRoute struct {
	interestController InterestController
	limiter            *ratelimit.Bucket
}

func NewInterestRoute(mongoclient *mongo.Client, ctx context.Context, l logr.Logger, limiter *ratelimit.Bucket) InterestRoute {
	Logger = l
	Logger.V(2).Info("NewInterestRoute created")
	interestCollection := mongoclient.Database("mutuals").Collection("interests")
	interestService := NewInterestService(interestCollection, ctx)
	interestController := NewInterestController(interestService)
	return InterestRoute{interestController, limiter}
}

func (me *InterestRoute) InitRouteTo(rg *gin.Engine) {
	router := rg.Group("/interests")
	router.POST("/rpc", me.RateLimit, me.RPCHandle)
}

func (me *InterestRoute) RateLimit(ctx *gin.Context) {
	// Check if the request is allowed by the rate limiter
	if me.limiter.TakeAvailable(1) == 0 {
		// The request is not allowed, so return an error
		ctx.AbortWithStatus(http.StatusTooManyRequests)
		return
	}
	ctx.Next()
}

func (me *InterestRoute) GetInterestService() I_InterestRepo {
	return me.interestController.interestService
}

func (me *InterestRoute) RPCHandle(ctx *gin.Context) {
	var jreq jsonrpc2.RPCRequest
	if err := ctx.ShouldBindJSON(&jreq); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "jsonrpc fail", "message": err.Error()})
		return
	}

	Logger.V(2).Info(fmt.Sprintf("RPCHandle %s", jreq.Method))

	jres := &jsonrpc2.RPCResponse{
		JSONRPC: "2.0",
		ID:      jreq.ID,
	}

	statuscode := http.StatusBadRequest
	switch jreq.Method {
	case "GetInterests":
		statuscode = me.method_GetInterests(ctx, &jreq, jres)
	case "SaveInterests":
		statuscode = me.method_SaveInterests(ctx, &jreq, jres)
	default:
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusMethodNotAllowed, Message: "method not allowed"}
	}

	if jres.Error != nil {
		Logger.Error(fmt.Errorf(jres.Error.Message), "response with error")
	}
	ctx.JSON(statuscode, jres)
}

func (me *InterestRoute) sessionClaims(ctx *gin.Context, jres *jsonrpc2.RPCResponse) *auth.Claims {
	vuser, ok := ctx.Get("validuser")
	if !ok {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusUnauthorized, Message: "unauthorized"}
		return nil
	}

	validuser := vuser.(*auth.Claims)
	if validuser.IsExpired() {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusUnauthorized, Message: "session expired"}
		return nil
	}

	return validuser
}

func (me *InterestRoute) method_GetInterests(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	validuser := me.sessionClaims(ctx, jres)
	if validuser == nil {
		return http.StatusUnauthorized
	}

	var req *GetInterestsRequest
	err := json.Unmarshal(jreq.Params, &req)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	res, e, code := me.interestController.GetInterests(validuser, req)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}

func (me *InterestRoute) method_SaveInterests(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	validuser := me.sessionClaims(ctx, jres)
	if validuser == nil {
		return http.StatusUnauthorized
	}

	var req *SaveInterestsRequest
	err := json.Unmarshal(jreq.Params, &req)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	res, e, code := me.interestController.SaveInterests(validuser, req)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}
