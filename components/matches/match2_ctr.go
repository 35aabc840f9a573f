package matches

import (
	"fmt"
	"net/http"

	"mutuals/auth"
	"mutuals/components/contacts"
	"mutuals/components/interests"
	"mutuals/components/user"
	"mutuals/jsonrpc2"
)

type MatchController struct {
	userService     user.I_UserRepo
	contactService  contacts.I_ContactRepo
	interestService interests.I_InterestRepo
}

func NewMatchController(userService user.I_UserRepo, contactService contacts.I_ContactRepo, interestService interests.I_InterestRepo) MatchController {
	return MatchController{userService, contactService, interestService}
}

// GetMatches recomputes the caller's match list from scratch: every
// read is an authoritative snapshot, nothing is cached across calls.
func (me *MatchController) GetMatches(validuser *auth.Claims, req *GetMatchesRequest) ([]*ResponseMatch, *jsonrpc2.RPCError, int) {
	Logger.V(2).Info(fmt.Sprintf("resolve matches for %s", req.UID))

	if validuser.GetUID() != req.UID {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "user uid did not match"}, http.StatusOK
	}

	myself, err := me.userService.FindUserById(req.UID)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
	}

	if myself.PhoneHash == "" {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "register your phone number first"}, http.StatusOK
	}

	admirers, err := me.interestService.FindAdmirers(myself.PhoneHash)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadGateway, Message: err.Error()}, http.StatusOK
	}

	if len(admirers) == 0 {
		return []*ResponseMatch{}, nil, http.StatusOK
	}

	myEdges, err := me.interestService.FindInterestsByOwner(req.UID)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadGateway, Message: err.Error()}, http.StatusOK
	}

	uids := make([]string, 0, len(admirers))
	for _, a := range admirers {
		if a.Owner != req.UID {
			uids = append(uids, a.Owner)
		}
	}

	candidates, err := me.userService.FindUsersByIds(uids)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadGateway, Message: err.Error()}, http.StatusOK
	}

	hashes := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c.PhoneHash != "" {
			hashes = append(hashes, c.PhoneHash)
		}
	}

	myContacts, err := me.contactService.FindContactsByOwnerAndHashes(req.UID, hashes)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadGateway, Message: err.Error()}, http.StatusOK
	}

	found := ResolveMutual(req.UID, myself.PhoneHash, myEdges, admirers, candidates, myContacts)

	Logger.V(2).Info(fmt.Sprintf("resolved %d matches", len(found)))
	return found, nil, http.StatusOK
}
