/*
Package permitpath is a guided question-flow engine for home-improvement
permit walkthroughs.

It answers three questions for a homeowner or contractor: does this job need
a permit, what will it roughly cost, and where does the paperwork go. The
core is a deterministic questionnaire engine: each project type has an
ordered question tree with conditional branching, and the engine produces
the next applicable question, validates answers, estimates progress, and
supports rewinding to re-answer any earlier question.

# Architecture

The engine is decoupled from its surroundings through two ports: a TreeSource
provides validated question trees per project type, and a SessionStore
persists walkthrough state between calls. Adapters exist for in-memory,
filesystem, and Redis session storage, and the same engine drives both the
interactive CLI and the JSON HTTP API.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/permitpath/permitpath"
	)

	func main() {
		app, err := permitpath.New("./trees")
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		id, prompt, err := app.StartWalkthrough(ctx, "electrical-panel")
		if err != nil {
			log.Fatal(err)
		}

		for prompt != nil {
			// Render prompt.Question, collect an answer, then:
			next, validation, err := app.SubmitAnswer(ctx, id, prompt.Question.ID, "yes")
			if err != nil {
				log.Fatal(err)
			}
			if !validation.Valid {
				continue // re-prompt with validation.Error
			}
			prompt = next
		}

		review, _ := app.Review(ctx, id)
		_ = review
	}
*/
package permitpath
