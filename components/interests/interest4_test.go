package interests

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"mutuals/auth"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMain(m *testing.M) {
	//before
	fmt.Println("\nSTART UNIT TEST 'interests'")

	m.Run()

	//after
	fmt.Println("END UNIT TEST 'interests'")
}

// fakeInterestRepo mimics the delete-all-then-insert-all mongo
// implementation, including the empty-ledger failure window.
type fakeInterestRepo struct {
	edges      []*DBInterest
	failInsert bool
}

func (me *fakeInterestRepo) LoadInterests(owner string) ([]string, error) {
	edges, _ := me.FindInterestsByOwner(owner)
	hashes := make([]string, 0, len(edges))
	for _, e := range edges {
		hashes = append(hashes, e.TargetHash)
	}
	return hashes, nil
}

func (me *fakeInterestRepo) FindInterestsByOwner(owner string) ([]*DBInterest, error) {
	found := []*DBInterest{}
	for _, e := range me.edges {
		if e.Owner == owner {
			found = append(found, e)
		}
	}
	return found, nil
}

func (me *fakeInterestRepo) ReplaceInterests(owner string, hashes []string) error {
	kept := me.edges[:0]
	for _, e := range me.edges {
		if e.Owner != owner {
			kept = append(kept, e)
		}
	}
	me.edges = kept

	if me.failInsert {
		return errors.New("interests were cleared but re-insert failed, ledger is empty, save again")
	}

	now := time.Now().UTC()
	for _, h := range hashes {
		me.edges = append(me.edges, &DBInterest{
			Id:         primitive.NewObjectID(),
			Owner:      owner,
			TargetHash: h,
			CreatedAt:  now,
		})
	}
	return nil
}

func (me *fakeInterestRepo) FindAdmirers(targetHash string) ([]*DBInterest, error) {
	found := []*DBInterest{}
	for _, e := range me.edges {
		if e.TargetHash == targetHash {
			found = append(found, e)
		}
	}
	return found, nil
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

func hashOf(b byte) string {
	return strings.Repeat(fmt.Sprintf("%02x", b), 32)
}

func Test_SaveThenLoad(t *testing.T) {
	asserts := assert.New(t)
	repo := &fakeInterestRepo{}
	ctr := NewInterestController(repo)

	set := []string{hashOf(1), hashOf(2), hashOf(3)}
	res, e, _ := ctr.SaveInterests(claimsFor("alice"), &SaveInterestsRequest{UID: "alice", Hashes: set})
	asserts.Nil(e)
	asserts.ElementsMatch(set, res.Hashes)

	loaded, e, _ := ctr.GetInterests(claimsFor("alice"), &GetInterestsRequest{UID: "alice"})
	asserts.Nil(e)
	asserts.ElementsMatch(set, loaded.Hashes)

	// save replaces wholesale, the old set is gone
	smaller := []string{hashOf(2)}
	_, e, _ = ctr.SaveInterests(claimsFor("alice"), &SaveInterestsRequest{UID: "alice", Hashes: smaller})
	asserts.Nil(e)

	loaded, _, _ = ctr.GetInterests(claimsFor("alice"), &GetInterestsRequest{UID: "alice"})
	asserts.ElementsMatch(smaller, loaded.Hashes)

	// empty save empties the ledger
	_, e, _ = ctr.SaveInterests(claimsFor("alice"), &SaveInterestsRequest{UID: "alice", Hashes: []string{}})
	asserts.Nil(e)

	loaded, _, _ = ctr.GetInterests(claimsFor("alice"), &GetInterestsRequest{UID: "alice"})
	asserts.Len(loaded.Hashes, 0)
}

func Test_SaveDedupes(t *testing.T) {
	asserts := assert.New(t)
	repo := &fakeInterestRepo{}
	ctr := NewInterestController(repo)

	res, e, _ := ctr.SaveInterests(claimsFor("alice"), &SaveInterestsRequest{UID: "alice", Hashes: []string{hashOf(7), hashOf(7)}})
	asserts.Nil(e)
	asserts.Len(res.Hashes, 1)
}

func Test_SaveRejectsBadHash(t *testing.T) {
	asserts := assert.New(t)
	repo := &fakeInterestRepo{}
	ctr := NewInterestController(repo)

	_, e, _ := ctr.SaveInterests(claimsFor("alice"), &SaveInterestsRequest{UID: "alice", Hashes: []string{"+15551234567"}})
	asserts.NotNil(e)
	asserts.Equal("hashes", e.Params[0].Field)
}

func Test_SaveUidMismatch(t *testing.T) {
	asserts := assert.New(t)
	repo := &fakeInterestRepo{}
	ctr := NewInterestController(repo)

	_, e, _ := ctr.SaveInterests(claimsFor("bob"), &SaveInterestsRequest{UID: "alice", Hashes: []string{hashOf(1)}})
	asserts.NotNil(e)
}

func Test_SaveFailureLeavesEmptyLedger(t *testing.T) {
	asserts := assert.New(t)
	repo := &fakeInterestRepo{}
	ctr := NewInterestController(repo)

	_, e, _ := ctr.SaveInterests(claimsFor("alice"), &SaveInterestsRequest{UID: "alice", Hashes: []string{hashOf(1)}})
	asserts.Nil(e)

	// insert fails after the delete already happened: the error is
	// surfaced and the ledger reads back empty, never half-applied
	repo.failInsert = true
	_, e, _ = ctr.SaveInterests(claimsFor("alice"), &SaveInterestsRequest{UID: "alice", Hashes: []string{hashOf(2)}})
	asserts.NotNil(e)
	asserts.Contains(e.Message, "ledger is empty")

	repo.failInsert = false
	loaded, _, _ := ctr.GetInterests(claimsFor("alice"), &GetInterestsRequest{UID: "alice"})
	asserts.Len(loaded.Hashes, 0)
}

func Test_FindAdmirers(t *testing.T) {
	asserts := assert.New(t)
	repo := &fakeInterestRepo{}
	ctr := NewInterestController(repo)

	_, _, _ = ctr.SaveInterests(claimsFor("alice"), &SaveInterestsRequest{UID: "alice", Hashes: []string{hashOf(9)}})
	_, _, _ = ctr.SaveInterests(claimsFor("bob"), &SaveInterestsRequest{UID: "bob", Hashes: []string{hashOf(9)}})

	admirers, err := repo.FindAdmirers(hashOf(9))
	asserts.Nil(err)
	asserts.Len(admirers, 2)
}
