// Package domain models the civil-defense shelter directory and the pure
// filter-sort engine behind the listing page.
//
// # Data Source
//
// Records originate from the Tainan City "防空疏散避難設施" PDF table for
// 新市區. An offline generator converts the table into a JSON array and a set
// of static pages. This package only consumes the finished records.
//
// # Record Conventions
//
// Field presence:
//
//	capacity  JSON number when the table lists one, absent otherwise.
//	          Absent is rendered as "not provided" and sorts as 0.
//	division  Governing police branch (e.g. 善化分局). Some generator
//	          variants emit it as "branch". Absent means unlabeled.
//	village   Administrative 里 (e.g. 豐華里). Some variants emit "li".
//
// Ordering:
//
//	Index is the record's position in the source table. Default order is
//	ascending Index, and every other order breaks ties by Index, so results
//	are deterministic for any query.
//
// # Search
//
// The search term is trimmed and case-folded, then matched as a substring of
// the folded name, address, village and division (when present). Fields are
// joined with U+001F so a term never matches across a field boundary.
//
// Categorical filters compare exact, case-sensitive values; the selectable
// values come from the records themselves (see [Values]).
package domain
