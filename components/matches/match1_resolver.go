package matches

import (
	"sort"

	"mutuals/components/contacts"
	"mutuals/components/interests"
	"mutuals/components/user"
)

// ResolveMutual computes the bidirectional intersection for one user,
// given snapshots of the relevant rows. A candidate counts as a match
// only when both directions hold: their ledger has an edge to myHash
// and my ledger has an edge to their phone hash. Pure function, no
// I/O; the controller feeds it.
//
// myEdges     - the caller's own interest edges
// admirers    - every edge in the system pointing at myHash
// candidates  - profiles of the admirer edge owners
// myContacts  - the caller's contact rows for the candidate hashes
func ResolveMutual(myUID string, myHash string, myEdges []*interests.DBInterest, admirers []*interests.DBInterest, candidates []*user.DBUser, myContacts []*contacts.DBContact) []*ResponseMatch {
	myEdgeByHash := make(map[string]*interests.DBInterest, len(myEdges))
	for _, e := range myEdges {
		myEdgeByHash[e.TargetHash] = e
	}

	admirerByOwner := make(map[string]*interests.DBInterest, len(admirers))
	for _, e := range admirers {
		admirerByOwner[e.Owner] = e
	}

	contactByHash := make(map[string]*contacts.DBContact, len(myContacts))
	for _, c := range myContacts {
		contactByHash[c.PhoneHash] = c
	}

	var found []*ResponseMatch
	for _, cand := range candidates {
		if cand.UID == myUID || cand.PhoneHash == "" || cand.PhoneHash == myHash {
			continue
		}

		theirEdge, ok := admirerByOwner[cand.UID]
		if !ok {
			continue
		}

		myEdge, ok := myEdgeByHash[cand.PhoneHash]
		if !ok {
			continue
		}

		contact, ok := contactByHash[cand.PhoneHash]
		if !ok {
			// edge without a surviving contact row; nothing to display
			continue
		}

		matchedAt := myEdge.CreatedAt
		if theirEdge.CreatedAt.After(matchedAt) {
			matchedAt = theirEdge.CreatedAt
		}

		found = append(found, &ResponseMatch{
			ContactId:    contact.Id.Hex(),
			ContactName:  contact.Name,
			ContactPhone: contact.Phone,
			MatchedAt:    matchedAt,
		})
	}

	// newest first, contact id breaks ties so the order is stable per
	// call
	sort.Slice(found, func(i, j int) bool {
		if found[i].MatchedAt.Equal(found[j].MatchedAt) {
			return found[i].ContactId < found[j].ContactId
		}
		return found[i].MatchedAt.After(found[j].MatchedAt)
	})

	if found == nil {
		return []*ResponseMatch{}
	}

	return found
}
