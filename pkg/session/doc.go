/*
Package session implements walkthrough session management.

It provides the high-level lifecycle over the flow engine: creating a session
for a project type, asking and answering questions, rewinding, and producing
review summaries, with the engine state persisted through a SessionStore
between calls. Per-session locks serialize concurrent access so overlapping
answer and rewind calls against the same session never interleave.
*/
package session
