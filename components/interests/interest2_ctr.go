package interests

import (
	"fmt"
	"net/http"

	"mutuals/auth"
	"mutuals/jsonrpc2"
	"mutuals/utils"
)

type InterestController struct {
	interestService I_InterestRepo
}

func NewInterestController(interestService I_InterestRepo) InterestController {
	return InterestController{interestService}
}

func (me *InterestController) GetInterests(validuser *auth.Claims, req *GetInterestsRequest) (*ResponseInterests, *jsonrpc2.RPCError, int) {
	if validuser.GetUID() != req.UID {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "user uid did not match"}, http.StatusOK
	}

	hashes, err := me.interestService.LoadInterests(req.UID)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadGateway, Message: err.Error()}, http.StatusOK
	}

	return &ResponseInterests{Hashes: hashes}, nil, http.StatusOK
}

// SaveInterests replaces the caller's whole interest set. Toggling a
// single interest is a client-side affair; only the final set ever
// reaches the store.
func (me *InterestController) SaveInterests(validuser *auth.Claims, req *SaveInterestsRequest) (*ResponseInterests, *jsonrpc2.RPCError, int) {
	Logger.V(2).Info(fmt.Sprintf("save %d interests for %s", len(req.Hashes), req.UID))

	if validuser.GetUID() != req.UID {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "user uid did not match"}, http.StatusOK
	}

	seen := make(map[string]bool, len(req.Hashes))
	hashes := make([]string, 0, len(req.Hashes))
	for _, h := range req.Hashes {
		if !utils.IsValidPhoneHash(h) {
			return nil, &jsonrpc2.RPCError{
				Code:    http.StatusBadRequest,
				Message: "invalid phone hash",
				Params:  []*jsonrpc2.InputFieldError{{Error: fmt.Sprintf("%q is not a phone hash", h), Field: "hashes"}},
			}, http.StatusOK
		}
		if seen[h] {
			continue
		}
		seen[h] = true
		hashes = append(hashes, h)
	}

	if err := me.interestService.ReplaceInterests(req.UID, hashes); err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadGateway, Message: err.Error()}, http.StatusOK
	}

	Logger.V(2).Info("interests saved")
	return &ResponseInterests{Hashes: hashes}, nil, http.StatusOK
}
