package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// signedTokenRe accepts +123 or -123 with optional thousands separators and
// decimals. The sign is mandatory: a bare number in a group chat is just a
// number, not an adjustment.
var signedTokenRe = regexp.MustCompile(`^\s*([+-][0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]+)?|[+-][0-9]+(?:\.[0-9]+)?)\s*$`)

// MinMagnitude is the smallest absolute amount accepted for an entry.
var MinMagnitude = decimal.New(1, -5) // 0.00001

// ParseSignedToken parses an explicitly signed amount token such as
// "+1,000" or "-42.50". It returns ErrMalformedToken for anything that is
// not a signed number and ErrZeroMagnitude for amounts below MinMagnitude.
func ParseSignedToken(raw string) (decimal.Decimal, error) {
	m := signedTokenRe.FindStringSubmatch(raw)
	if m == nil {
		return decimal.Zero, ErrMalformedToken
	}

	val, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return decimal.Zero, ErrMalformedToken
	}

	if val.Abs().LessThan(MinMagnitude) {
		return decimal.Zero, ErrZeroMagnitude
	}

	return val, nil
}

// MatchesSignedToken reports whether raw looks like a signed amount token,
// without parsing it. Transports use it to decide if a chat message is an
// adjustment at all.
func MatchesSignedToken(raw string) bool {
	return signedTokenRe.MatchString(raw)
}
