/*
Package flow implements the guided question-flow engine.

An Engine is bound to the question tree of one project type and owns the
answer history of a single walkthrough. It produces the next applicable
question, validates candidate answers, estimates progress, supports rewinding
to any previously answered question, and renders review summaries.

The engine is synchronous and not safe for concurrent mutation; each instance
is exclusively owned by one logical user session. pkg/session serializes
access when sessions are shared across callers.
*/
package flow
