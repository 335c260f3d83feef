// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package format

// Built-in format names.
const (
	Standard      = "standard"
	AdvantageSets = "advantage-sets"
	BestOfFive    = "best-of-five"
	NoAdDoubles   = "no-ad-doubles"
)

const builtinYAML = `
default: standard
formats:
  - name: standard
    description: Best of three, ten-point match tiebreak in the deciding set
  - name: advantage-sets
    description: Best of three, every set including the last decided by a tiebreak at six-all
    finalSetTiebreak: false
  - name: best-of-five
    description: Best of five, ten-point match tiebreak in the deciding set
    bestOf: 5
  - name: no-ad-doubles
    description: Best of three, no-ad games, ten-point match tiebreak
    noAd: true
`

// Builtin returns the formats used when no formats file is configured.
func Builtin() *Config {
	config, err := Parse([]byte(builtinYAML))
	if err != nil {
		panic("builtin formats are invalid: " + err.Error())
	}
	return config
}
