// Package dispatch turns one line of user input into a sequence of
// operation invocations.
//
// Tokens are processed strictly in the order given, one at a time. An
// unknown or failing token never stops the tokens after it.
package dispatch
