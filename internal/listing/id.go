package listing

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// idLen is the hex prefix length kept from the sha256 digest. 16 hex
// chars (64 bits) is plenty for a listing of this size.
const idLen = 16

// ID computes the stable identity of a row from company, role, location
// and application URL only. Age and date fields are deliberately
// excluded: upstream rewrites them on every run for the same posting,
// and including them would make every row look new each time.
//
// Known limitation: two distinct postings with identical company, role
// and location and no application link collapse to one ID. That is
// accepted; do not widen the key without also migrating persisted state.
func ID(r Row) string {
	key := strings.Join([]string{
		strings.TrimSpace(r.Company),
		strings.TrimSpace(r.Role),
		strings.TrimSpace(r.Location),
		strings.TrimSpace(r.ApplicationURL),
	}, "|")

	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:idLen]
}
