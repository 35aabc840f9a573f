package utils

import (
	"encoding/json"
	"errors"
	"math/rand"
	"regexp"
	"strconv"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

var hashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// GenerateRandomNumber returns a 6 digit login code as a string.
func GenerateRandomNumber() string {
	rand.Seed(time.Now().UnixNano())
	num := rand.Intn(900000) + 100000

	return strconv.Itoa(num)
}

func ToDoc(v interface{}) (doc *bson.D, err error) {
	data, err := bson.Marshal(v)
	if err != nil {
		return
	}

	err = bson.Unmarshal(data, &doc)
	return
}

func ToRawMessage(s interface{}) (json.RawMessage, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

func StringInSlice(a string, list []string) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

func IsValidDisplayName(s string) (bool, error) {
	if len(s) == 0 {
		return false, errors.New("name can not empty")
	}

	if len(s) > 50 {
		return false, errors.New("name to long, max 50 characters")
	}

	return true, nil
}

func IsValidLoginCode(s string) (bool, error) {
	if len(s) == 0 {
		return false, errors.New("code can not empty")
	}

	if len(s) != 6 {
		return false, errors.New("code must be 6 characters")
	}

	return true, nil
}

// IsValidPhoneHash checks the fixed 64 hex char digest format without
// touching the phone package.
func IsValidPhoneHash(s string) bool {
	return hashPattern.MatchString(s)
}

func IsValidEmail(s string) bool {
	return govalidator.IsEmail(s)
}

func IsValidUid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
