package contacts

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

type ContactRoute struct {
	contactController ContactController
	limiter           *ratelimit.Bucket
}

func NewContactRoute(mongoclient *mongo.Client, ctx context.Context, l logr.Logger, limiter *ratelimit.Bucket, defaultRegion string) ContactRoute {
	Logger = l
	Logger.V(2).Info("NewContactRoute created")
	contactCollection := mongoclient.Database("mutuals").Collection("contacts")
	contactService := NewContactService(contactCollection, ctx)
	contactController := NewContactController(contactService, defaultRegion)
	return ContactRoute{contactController, limiter}
}

func (me *ContactRoute) InitRouteTo(rg *gin.Engine) {
	router := rg.Group("/contacts")
	router.POST("/rpc", me.RateLimit, me.RPCHandle)
}

func (me *ContactRoute) RateLimit(ctx *gin.Context) {
	// Check if the request is allowed by the rate limiter
	if me.limiter.TakeAvailable(1) == 0 {
		// The request is not allowed, so return an error
		ctx.AbortWithStatus(http.StatusTooManyRequests)
		return
	}
	ctx.Next()
}

func (me *ContactRoute) GetContactService() I_ContactRepo {
	return me.contactController.contactService
}

func (me *ContactRoute) RPCHandle(ctx *gin.Context) {
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
	case "UploadContacts":
		statuscode = me.method_UploadContacts(ctx, &jreq, jres)
	case "GetContacts":
		statuscode = me.method_GetContacts(ctx, &jreq, jres)
	case "DeleteContact":
		statuscode = me.method_DeleteContact(ctx, &jreq, jres)
	default:
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusMethodNotAllowed, Message: "method not allowed"}
	}

	if jres.Error != nil {
		Logger.Error(fmt.Errorf(jres.Error.Message), "response with error")
	}
	ctx.JSON(statuscode, jres)
}

func (me *ContactRoute) sessionClaims(ctx *gin.Context, jres *jsonrpc2.RPCResponse) *auth.Claims {
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

func (me *ContactRoute) method_UploadContacts(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	validuser := me.sessionClaims(ctx, jres)
	if validuser == nil {
		return http.StatusUnauthorized
	}

	var req *UploadContactsRequest
	err := json.Unmarshal(jreq.Params, &req)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	res, e, code := me.contactController.UploadContacts(validuser, req)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}

func (me *ContactRoute) method_GetContacts(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	validuser := me.sessionClaims(ctx, jres)
	if validuser == nil {
		return http.StatusUnauthorized
	}

	var req *GetContactsRequest
	err := json.Unmarshal(jreq.Params, &req)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	res, e, code := me.contactController.GetContacts(validuser, req)
	jres.Result, _ = utils.ToRawMessage(res)
	jres.Error = e

	return code
}

func (me *ContactRoute) method_DeleteContact(ctx *gin.Context, jreq *jsonrpc2.RPCRequest, jres *jsonrpc2.RPCResponse) int {
	validuser := me.sessionClaims(ctx, jres)
	if validuser == nil {
		return http.StatusUnauthorized
	}

	var req *DeleteContactRequest
	err := json.Unmarshal(jreq.Params, &req)
	if err != nil {
		jres.Error = &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}
		return http.StatusBadRequest
	}

	e, code := me.contactController.DeleteContact(validuser, req)
	if e == nil {
		jres.Result, _ = utils.ToRawMessage(&gin.H{"status": "deleted"})
	}
	jres.Error = e

	return code
}
