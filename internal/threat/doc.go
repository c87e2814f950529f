// Package threat implements the eagle and cat predator state machines.
//
// Both machines are pure tick functions. They return the next state and a
// tagged event; the caller applies fatal events and score bonuses.
package threat
