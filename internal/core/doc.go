// Package core provides the small shared types used by the simulation and its
// collaborators: vectors, clocks, cue names, input frames and a screen buffer.
// It has no UI dependencies so game logic stays pure and testable.
package core
