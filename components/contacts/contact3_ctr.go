package contacts

import (
	"fmt"
	"net/http"
	"strconv"

	"mutuals/auth"
	"mutuals/jsonrpc2"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactController struct {
	contactService I_ContactRepo
	defaultRegion  string
}

func NewContactController(contactService I_ContactRepo, defaultRegion string) ContactController {
	return ContactController{contactService, defaultRegion}
}

// UploadContacts parses the pasted text and stores every valid line
// for the caller. Duplicate rows are reported, not fatal; the rest of
// the batch is kept.
func (me *ContactController) UploadContacts(validuser *auth.Claims, req *UploadContactsRequest) (*ResponseUpload, *jsonrpc2.RPCError, int) {
	Logger.V(2).Info(fmt.Sprintf("upload contacts for %s", req.UID))

	if validuser.GetUID() != req.UID {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "user uid did not match"}, http.StatusOK
	}

	parsed := ParseContacts(req.Text, me.defaultRegion)
	if len(parsed) == 0 {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "no valid contacts found, check the format"}, http.StatusOK
	}

	rows := make([]*CreateContact, 0, len(parsed))
	for _, p := range parsed {
		rows = append(rows, &CreateContact{
			Name:      p.Name,
			Phone:     p.Phone,
			PhoneHash: p.PhoneHash,
		})
	}

	inserted, duplicates, err := me.contactService.CreateContacts(req.UID, rows)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadGateway, Message: err.Error()}, http.StatusOK
	}

	res := &ResponseUpload{
		Inserted:   len(inserted),
		Duplicates: duplicates,
		Contacts:   make([]*ResponseContact, 0, len(inserted)),
	}
	if duplicates > 0 {
		res.Notice = fmt.Sprintf("%d contacts already exist", duplicates)
	}
	for _, c := range inserted {
		res.Contacts = append(res.Contacts, toResponseContact(c))
	}

	Logger.V(2).Info(fmt.Sprintf("upload done, %d inserted %d duplicates", res.Inserted, res.Duplicates))
	return res, nil, http.StatusCreated
}

func (me *ContactController) GetContacts(validuser *auth.Claims, req *GetContactsRequest) ([]*ResponseContact, *jsonrpc2.RPCError, int) {
	if validuser.GetUID() != req.UID {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "user uid did not match"}, http.StatusOK
	}

	page := req.Page
	if page == "" {
		page = "1"
	}

	limit := req.Limit
	if limit == "" {
		limit = "100"
	}

	intPage, err := strconv.Atoi(page)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "invalid page input"}, http.StatusOK
	}

	intLimit, err := strconv.Atoi(limit)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "invalid limit input"}, http.StatusOK
	}

	found, err := me.contactService.FindContactsByOwner(req.UID, intPage, intLimit)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadGateway, Message: err.Error()}, http.StatusOK
	}

	res := make([]*ResponseContact, 0, len(found))
	for _, c := range found {
		res = append(res, toResponseContact(c))
	}

	return res, nil, http.StatusOK
}

func (me *ContactController) DeleteContact(validuser *auth.Claims, req *DeleteContactRequest) (*jsonrpc2.RPCError, int) {
	if validuser.GetUID() != req.UID {
		return &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "user uid did not match"}, http.StatusOK
	}

	id, err := primitive.ObjectIDFromHex(req.ContactId)
	if err != nil {
		return &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "invalid contact id"}, http.StatusOK
	}

	err = me.contactService.DeleteContact(req.UID, id)
	if err != nil {
		return &jsonrpc2.RPCError{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
	}

	return nil, http.StatusOK
}
