/*
Package domain contains the core domain models for the PermitPath question-flow
engine.

It defines the fundamental entities of a guided permit walkthrough: question
trees, question definitions with branching conditions, answer history, and the
session snapshot the engine operates on. This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - QuestionTree: The ordered question definitions for one project type.
  - Question: A single questionnaire step, optionally gated by a Condition.
  - Condition: A branching rule evaluated against the current answer set.
  - AnswerEntry: One item of the append-only answer history.
  - Session: The persistable snapshot of a walkthrough (history, answers, cursor).
*/
package domain
