// Package errors provides structured, coded errors for viewcore.
//
// Two classes of failure exist in a reconciliation pass:
//   - logic errors (unbalanced path scopes, retained mutation handles,
//     downcasts against a node whose shape changed) abort the pass with a
//     panic carrying a *CoreError;
//   - expected runtime conditions (a message for a removed node) are not
//     errors at all and are reported through view.MessageResult.
//
// Host-facing failures such as a closed driver or an unreadable config file
// are returned as ordinary error values built from the same registry.
//
// # Error Codes
//
// Each error has a unique code (e.g., "VC001") that maps to a short message,
// a detailed explanation and a category:
//
//	err := errors.New("VC001").
//	    WithDetail("depth 3 after scope, expected 2").
//	    WithSuggestion("Use view.WithID instead of calling PushID directly")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR VC001: Unbalanced view path scope
//	//
//	//   depth 3 after scope, expected 2
//	//
//	//   Hint: Use view.WithID instead of calling PushID directly
package errors
