package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func smells(m dsl.Matcher) {
	// Two consecutive guards with the same return merge into one:
	//   if a { return err }
	//   if b { return err }
	// => if a || b { return err }
	m.Match(`if $c1 { return $ret }; if $c2 { return $ret }`).
		Report(`two consecutive guards return the same value; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { return $ret }`)

	m.Match(`if $c1 { continue }; if $c2 { continue }`).
		Report(`two consecutive continues; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { continue }`)

	m.Match(`for $*_ { for $*_ { $*_ } }`).
		Report(`nested for-loop; consider extracting inner loop logic or reducing algorithmic complexity`)
}

// errorWrapping keeps error chains intact so errors.Is reaches the tool sentinels.
func errorWrapping(m dsl.Matcher) {
	m.Match(`fmt.Errorf($format, $*_, $err)`).
		Where(m["err"].Type.Is(`error`) && !m["format"].Text.Matches(`%w`)).
		Report(`error formatted without %w; wrap it so errors.Is/As still match`)

	m.Match(`errors.New(fmt.Sprintf($*args))`).
		Report(`use fmt.Errorf instead of errors.New(fmt.Sprintf(...))`).
		Suggest(`fmt.Errorf($args)`)
}

// storageAccess keeps request-path storage inside the unit of work. A pinned
// in-memory pool has one connection, so a second handle deadlocks.
func storageAccess(m dsl.Matcher) {
	m.Match(`$db.BeginTx($*_)`).
		Where(m["db"].Type.Is(`*sql.DB`) && !m.File().Name.Matches(`unit_of_work\.go$`) && !m.File().Name.Matches(`_test\.go$`) && !m.File().PkgPath.Matches(`infra/sqlite`)).
		Report(`open transactions through organizer.UnitOfWork`)
}
