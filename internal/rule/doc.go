// Package rule holds the replacement rules consulted while typing.
//
// A Rule pairs a trigger string with the text that replaces it. Rules live in
// a Store, an ordered collection that preserves insertion order for display
// and resolves lookups first-match-wins:
//
//	store := rule.NewStore()
//	r := store.AddRule()
//	_ = store.SetTrigger(r.ID, "btw")
//	_ = store.SetReplacement(r.ID, "by the way")
//
//	if match, ok := store.FindByTrigger("btw"); ok {
//	    fmt.Println(match.Replacement) // "by the way"
//	}
//
// A rule whose trigger is empty or only whitespace is disabled and is never
// returned by FindByTrigger. When two rules share a trigger only the earlier
// one is ever considered; Lint reports such shadowed rules.
//
// # Thread Safety
//
// Store is safe for concurrent use. Readers take a shared lock and mutations
// an exclusive one, so a lookup never observes a half-applied append or
// removal. Replace swaps the whole rule list in one step for reloads.
package rule
