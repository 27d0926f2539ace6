package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func smells(m dsl.Matcher) {
	// Two consecutive guards with the same return are mergeable with ||.
	m.Match(`if $c1 { return $ret }; if $c2 { return $ret }`).
		Report(`two consecutive guards return the same value; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { return $ret }`)

	// Response bodies must always be closed before returning.
	m.Match(`$resp, $err := $c.Do($req); if $err != nil { return $*_ }; $_ := $resp.Body`).
		Report(`check that resp.Body is closed on every path`)

	// Error strings are lowercase and unpunctuated per Go convention.
	m.Match(`errors.New($msg)`, `fmt.Errorf($msg)`).
		Where(m["msg"].Text.Matches(`"[A-Z].*"`)).
		Report(`error strings should not be capitalized`)
}
