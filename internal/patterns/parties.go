package patterns

import "regexp"

// partyRoles are the contractual role nouns, grouped the way they are
// searched: an earlier group wins even if a later group matches further left
var partyRoles = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:Buyer|Seller|Lessor|Lessee|Licensor|Licensee|Contractor|Client)\b`),
	regexp.MustCompile(`(?i)\b(?:Employer|Employee|Landlord|Tenant|Vendor|Customer|Provider|Recipient)\b`),
	regexp.MustCompile(`(?i)\b(?:Company|User|Subscriber|Member|Patient|Insurer|Insured|Owner)\b`),
}

// MatchParty returns the first role noun mentioned in text, as written
func MatchParty(text string) (string, bool) {
	for _, re := range partyRoles {
		if m := re.FindString(text); m != "" {
			return m, true
		}
	}
	return "", false
}
