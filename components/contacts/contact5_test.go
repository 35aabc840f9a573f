package contacts

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"mutuals/auth"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMain(m *testing.M) {
	//before
	fmt.Println("\nSTART UNIT TEST 'contacts'")

	m.Run()

	//after
	fmt.Println("END UNIT TEST 'contacts'")
}

func Test_ParseContacts(t *testing.T) {
	asserts := assert.New(t)

	text := "John Doe: +1 234 567 8900\n" +
		"Jane Smith, (555) 123-4567\n" +
		"Bob Wilson 9876543210\n" +
		"NotAPhoneAtAll\n"

	parsed := ParseContacts(text, "US")
	asserts.Len(parsed, 3)

	asserts.Equal("John Doe", parsed[0].Name)
	asserts.Equal("+12345678900", parsed[0].Phone)

	asserts.Equal("Jane Smith", parsed[1].Name)
	asserts.Equal("+15551234567", parsed[1].Phone)

	asserts.Equal("Bob Wilson", parsed[2].Name)
	asserts.Equal("+19876543210", parsed[2].Phone)

	for _, p := range parsed {
		asserts.Len(p.PhoneHash, 64)
	}
}

func Test_ParseContactsSeparatorStyles(t *testing.T) {
	asserts := assert.New(t)

	// the three separator styles must split identically
	for _, line := range []string{
		"Jane Smith: (555) 123-4567",
		"Jane Smith, (555) 123-4567",
		"Jane Smith (555) 123-4567",
	} {
		parsed := ParseContacts(line, "US")
		asserts.Len(parsed, 1, line)
		asserts.Equal("Jane Smith", parsed[0].Name, line)
		asserts.Equal("+15551234567", parsed[0].Phone, line)
	}
}

func Test_ParseContactsDiscards(t *testing.T) {
	asserts := assert.New(t)

	// phone-only line has an empty name
	asserts.Len(ParseContacts("+1 555 123 4567", "US"), 0)

	// blank lines and whitespace are skipped
	asserts.Len(ParseContacts("\n   \n\n", "US"), 0)

	// invalid digit count for the region
	asserts.Len(ParseContacts("Short Stuff: 123", "US"), 0)
}

func Test_ParseContactsKeepsDuplicates(t *testing.T) {
	asserts := assert.New(t)

	text := "Jane Smith, (555) 123-4567\nJane Smith, (555) 123-4567\n"
	parsed := ParseContacts(text, "US")
	asserts.Len(parsed, 2)
	asserts.Equal(parsed[0].PhoneHash, parsed[1].PhoneHash)
}

func Test_ParseContactsRestartable(t *testing.T) {
	asserts := assert.New(t)

	text := "John Doe: +1 234 567 8900\nJane Smith, (555) 123-4567\n"
	first := ParseContacts(text, "US")
	second := ParseContacts(text, "US")
	asserts.Equal(first, second)
}

type fakeContactRepo struct {
	rows []*DBContact
}

func (me *fakeContactRepo) CreateContacts(owner string, contacts []*CreateContact) ([]*DBContact, int, error) {
	inserted := []*DBContact{}
	duplicates := 0
	for _, c := range contacts {
		dup := false
		for _, row := range me.rows {
			if row.Owner == owner && row.PhoneHash == c.PhoneHash {
				dup = true
				break
			}
		}
		for _, in := range inserted {
			if in.PhoneHash == c.PhoneHash {
				dup = true
				break
			}
		}
		if dup {
			duplicates++
			continue
		}
		row := &DBContact{
			Id:        primitive.NewObjectID(),
			Owner:     owner,
			Name:      c.Name,
			Phone:     c.Phone,
			PhoneHash: c.PhoneHash,
			CreatedAt: time.Now().UTC(),
		}
		me.rows = append(me.rows, row)
		inserted = append(inserted, row)
	}
	return inserted, duplicates, nil
}

func (me *fakeContactRepo) FindContactsByOwner(owner string, page, limit int) ([]*DBContact, error) {
	found := []*DBContact{}
	for _, row := range me.rows {
		if row.Owner == owner {
			found = append(found, row)
		}
	}
	return found, nil
}

func (me *fakeContactRepo) FindContactsByOwnerAndHashes(owner string, hashes []string) ([]*DBContact, error) {
	found := []*DBContact{}
	for _, row := range me.rows {
		if row.Owner != owner {
			continue
		}
		for _, h := range hashes {
			if row.PhoneHash == h {
				found = append(found, row)
				break
			}
		}
	}
	return found, nil
}

func (me *fakeContactRepo) DeleteContact(owner string, id primitive.ObjectID) error {
	for i, row := range me.rows {
		if row.Owner == owner && row.Id == id {
			me.rows = append(me.rows[:i], me.rows[i+1:]...)
			return nil
		}
	}
	return errors.New("no contact with that Id exists")
}

func claimsFor(uid string) *auth.Claims {
	return &auth.Claims{
		ID:  uid,
		Cmd: auth.CmdLogin,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}
}

func Test_UploadContacts(t *testing.T) {
	asserts := assert.New(t)
	repo := &fakeContactRepo{}
	ctr := NewContactController(repo, "US")

	text := "John Doe: +1 234 567 8900\nJane Smith, (555) 123-4567\nNotAPhoneAtAll\n"
	res, e, code := ctr.UploadContacts(claimsFor("alice"), &UploadContactsRequest{UID: "alice", Text: text})
	asserts.Nil(e)
	asserts.Equal(201, code)
	asserts.Equal(2, res.Inserted)
	asserts.Equal(0, res.Duplicates)

	// uploading the same text again only yields duplicates
	res, e, _ = ctr.UploadContacts(claimsFor("alice"), &UploadContactsRequest{UID: "alice", Text: text})
	asserts.Nil(e)
	asserts.Equal(0, res.Inserted)
	asserts.Equal(2, res.Duplicates)
	asserts.NotEmpty(res.Notice)

	// garbage only input is an error
	_, e, _ = ctr.UploadContacts(claimsFor("alice"), &UploadContactsRequest{UID: "alice", Text: "nothing here"})
	asserts.NotNil(e)

	// uid mismatch against the session
	_, e, _ = ctr.UploadContacts(claimsFor("bob"), &UploadContactsRequest{UID: "alice", Text: text})
	asserts.NotNil(e)
}

func Test_GetAndDeleteContacts(t *testing.T) {
	asserts := assert.New(t)
	repo := &fakeContactRepo{}
	ctr := NewContactController(repo, "US")

	_, e, _ := ctr.UploadContacts(claimsFor("alice"), &UploadContactsRequest{UID: "alice", Text: "Jane Smith, (555) 123-4567"})
	asserts.Nil(e)

	list, e, _ := ctr.GetContacts(claimsFor("alice"), &GetContactsRequest{UID: "alice"})
	asserts.Nil(e)
	asserts.Len(list, 1)

	// another user sees nothing
	other, e, _ := ctr.GetContacts(claimsFor("bob"), &GetContactsRequest{UID: "bob"})
	asserts.Nil(e)
	asserts.Len(other, 0)

	e, _ = ctr.DeleteContact(claimsFor("alice"), &DeleteContactRequest{UID: "alice", ContactId: list[0].Id})
	asserts.Nil(e)

	list, _, _ = ctr.GetContacts(claimsFor("alice"), &GetContactsRequest{UID: "alice"})
	asserts.Len(list, 0)
}
