package user

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"mutuals/auth"
	"mutuals/jsonrpc2"
	"mutuals/phone"
	"mutuals/utils"

	"github.com/google/uuid"
)

type UserController struct {
	userService   I_UserRepo
	defaultRegion string
}

func NewUserController(userService I_UserRepo, defaultRegion string) UserController {
	return UserController{userService, defaultRegion}
}

func SendCodeEmail(email string, code *LoginCode) {
	err := auth.SendLoginCodeMail(email, code)
	if err != nil {
		Logger.Error(err, "send email error")
	}
}

// RequestLoginCode starts the passwordless sign-in: the profile is
// created on first contact, a 6 digit code is mailed out and a short
// lived code token is returned for the confirm step.
func (me *UserController) RequestLoginCode(req *LoginRequest) (*ResponseLogin, *jsonrpc2.RPCError, int) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	Logger.V(2).Info(fmt.Sprintf("request login code %s", req.Email))

	if ok := utils.IsValidEmail(req.Email); !ok {
		return nil, &jsonrpc2.RPCError{
			Code:    http.StatusForbidden,
			Message: "forbidden, invalid input",
			Params:  []*jsonrpc2.InputFieldError{{Error: "email invalid", Field: "email"}},
		}, http.StatusOK
	}

	reg := &LoginCode{
		Code:       utils.GenerateRandomNumber(),
		SendCodeAt: time.Now().UTC(),
	}

	existing, _ := me.userService.FindUserByEmail(req.Email)
	if existing != nil {
		existing.Reg = reg
		_, err := me.userService.UpdateUser(existing.Id, existing)
		if err != nil {
			return nil, &jsonrpc2.RPCError{Code: http.StatusBadGateway, Message: err.Error()}, http.StatusOK
		}
	} else {
		nu := &CreateUser{
			UID:         uuid.New().String(),
			Email:       req.Email,
			DisplayName: strings.Split(req.Email, "@")[0],
			Reg:         reg,
		}

		newUser, err := me.userService.CreateUser(nu)
		if err != nil {
			if strings.Contains(err.Error(), "already exists") {
				return nil, &jsonrpc2.RPCError{Code: http.StatusConflict, Message: err.Error()}, http.StatusOK
			}
			return nil, &jsonrpc2.RPCError{Code: http.StatusBadGateway, Message: err.Error()}, http.StatusOK
		}
		existing = newUser
	}

	token, err := auth.CreateCodeToken(existing.UID, existing.Email, reg.Code)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusOK
	}

	go SendCodeEmail(existing.Email, reg)

	Logger.V(2).Info("login code sent")
	return &ResponseLogin{Email: existing.Email, JWT: token}, nil, http.StatusOK
}

// ConfirmLoginCode exchanges the mailed code plus its code token for a
// session token.
func (me *UserController) ConfirmLoginCode(req *ConfirmLoginRequest) (*ResponseUser, *jsonrpc2.RPCError, int) {
	_, err := utils.IsValidLoginCode(req.Code)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: err.Error()}, http.StatusOK
	}

	claims, err := auth.ValidateToken(req.JWT)
	if err != nil || claims.GetCmd() != auth.CmdCode {
		return nil, &jsonrpc2.RPCError{Code: http.StatusUnauthorized, Message: "invalid or expired code token"}, http.StatusOK
	}

	found, err := me.userService.FindUserById(claims.GetUID())
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
	}

	if found.Reg == nil || found.Reg.Code != req.Code || claims.GetCode() != req.Code {
		return nil, &jsonrpc2.RPCError{Code: http.StatusForbidden, Message: "wrong code"}, http.StatusOK
	}

	if time.Now().UTC().After(found.Reg.SendCodeAt.Add(time.Hour)) {
		return nil, &jsonrpc2.RPCError{Code: http.StatusForbidden, Message: "code expired, request a new one"}, http.StatusOK
	}

	// burn the code
	found.Reg = &LoginCode{}
	found, err = me.userService.UpdateUser(found.Id, found)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadGateway, Message: err.Error()}, http.StatusOK
	}

	token, err := auth.CreateSessionToken(found.UID, found.Email)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusInternalServerError, Message: err.Error()}, http.StatusOK
	}

	res := &ResponseUser{
		UID:         found.UID,
		Email:       found.Email,
		DisplayName: found.DisplayName,
		PhoneNumber: found.PhoneNumber,
		JWT:         token,
	}

	Logger.V(2).Info("login confirmed")
	return res, nil, http.StatusOK
}

func (me *UserController) GetSelf(validuser *auth.Claims, req *GetUserRequest) (*ResponseUser, *jsonrpc2.RPCError, int) {
	if validuser.GetUID() != req.UID {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "user uid did not match"}, http.StatusOK
	}

	found, err := me.userService.FindUserById(req.UID)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
	}

	res := &ResponseUser{
		UID:         found.UID,
		Email:       found.Email,
		DisplayName: found.DisplayName,
		PhoneNumber: found.PhoneNumber,
	}

	return res, nil, http.StatusOK
}

// SetPhoneNumber stores the caller's own number in canonical form
// together with its hash; the hash is what other users' interest edges
// will point at.
func (me *UserController) SetPhoneNumber(validuser *auth.Claims, req *SetPhoneRequest) (*ResponseUser, *jsonrpc2.RPCError, int) {
	Logger.V(2).Info(fmt.Sprintf("set phone number for %s", req.UID))

	if validuser.GetUID() != req.UID {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "user uid did not match"}, http.StatusOK
	}

	canonical, hash, err := phone.NormalizeAndHash(req.Phone, me.defaultRegion)
	if err != nil {
		return nil, &jsonrpc2.RPCError{
			Code:    http.StatusBadRequest,
			Message: "invalid phone number",
			Params:  []*jsonrpc2.InputFieldError{{Error: err.Error(), Field: "phone"}},
		}, http.StatusOK
	}

	holder, _ := me.userService.FindUserByPhoneHash(hash)
	if holder != nil && holder.UID != req.UID {
		return nil, &jsonrpc2.RPCError{Code: http.StatusConflict, Message: "this phone number is already in use"}, http.StatusOK
	}

	found, err := me.userService.FindUserById(req.UID)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusNotFound, Message: err.Error()}, http.StatusOK
	}

	found.PhoneNumber = canonical
	found.PhoneHash = hash
	found, err = me.userService.UpdateUser(found.Id, found)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadGateway, Message: err.Error()}, http.StatusOK
	}

	res := &ResponseUser{
		UID:         found.UID,
		Email:       found.Email,
		DisplayName: found.DisplayName,
		PhoneNumber: found.PhoneNumber,
	}

	Logger.V(2).Info("phone number saved")
	return res, nil, http.StatusOK
}

// ResetAccount wipes the caller's profile, contacts and interest
// edges.
func (me *UserController) ResetAccount(validuser *auth.Claims, req *ResetAccountRequest) (*ResponseStatus, *jsonrpc2.RPCError, int) {
	if validuser.GetUID() != req.UID {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadRequest, Message: "user uid did not match"}, http.StatusOK
	}

	err := me.userService.DeleteUserData(req.UID)
	if err != nil {
		return nil, &jsonrpc2.RPCError{Code: http.StatusBadGateway, Message: err.Error()}, http.StatusOK
	}

	Logger.Info(fmt.Sprintf("account %s wiped", req.UID))
	return &ResponseStatus{UID: req.UID, Status: "deleted"}, nil, http.StatusOK
}
