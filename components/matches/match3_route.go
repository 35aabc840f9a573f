package matches

import (
	"encoding/json"
	"fmt"
	"net/http"

	"mutuals/auth"
	"mutuals/components/contacts"
	"mutuals/components/interests"
	"mutuals/components/user"
	"mutuals/jsonrpc2"
	"mutuals/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/juju/ratelimit"
)

var Logger logr.Logger = logr.Discard()

type MatchRoute struct {
	matchController MatchController
	limiter         *ratelimit.Bucket
}

// NewMatchRoute wires the resolver to the other components' services;
// matches own no collection of their own.
func NewMatchRoute(l logr.Logger, limiter *ratelimit.Bucket, userService user.I_UserRepo, contactService contacts.I_ContactRepo, interestService interests.I_InterestRepo) MatchRoute {
	Logger = l
	Logger.V(2).Info("NewMatchRoute created")
	matchController := NewMatchController(userService, contactService, interestService)
	return MatchRoute{matchController, limiter}
}

func (me *MatchRoute) InitRouteTo(rg *gin.Engine) {
	router := rg.Group("/matches")
	router.POST("/rpc", me.RateLimit, me.RPCHandle)
}

func (me *MatchRoute) RateLimit(ctx *gin.Context) {
	// Check if the request is allowed by the rate limiter
	if me.limiter.TakeAvailable(1) == 0 {
		// The request is not allowed, so return an error
		ctx.AbortWithStatus(http.StatusTooManyRequests)
		return
	}
	ctx.Next()
}

func (me *MatchRoute) RPCHandle(ctx *gin.Context) {
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
	case "GetMatches":
		statuscode = me.method_GetMatches(ctx, &jreq, jres)
	default:
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusMethodNotAllowed, Message: "method not allowed"}
	}

	if jres.Error != nil {
		Logger.Error(fmt.Errorf(jres.Error.Message), "response with error")
	}
	ctx.JSON(statuscode, jres)
}

func (me *MatchRoute) method_GetMatches(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	vuser, ok := ctx.Get("validuser")
	if !ok {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusUnauthorized, Message: "unauthorized"}
		return http.StatusUnauthorized
	}

	validuser := vuser.(*auth.Claims)
	if validuser.IsExpired() {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusUnauthorized, Message: "session expired"}
		return http.StatusUnauthorized
	}

	var req *GetMatchesRequest
	err := json.Unmarshal(jreq.Params, &req)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	res, e, code := me.matchController.GetMatches(validuser, req)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}
