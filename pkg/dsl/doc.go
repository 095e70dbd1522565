/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing question trees.

It allows developers to define permit questionnaires using a type-safe, fluent builder pattern
instead of relying on external YAML files. This is particularly useful for dynamic tree
generation, unit testing, and leveraging IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/permitpath/permitpath"
		"github.com/permitpath/permitpath/pkg/dsl"
	)

	func main() {
		b := dsl.New("fence", "Fence Installation")

		b.Ask("fence_height", "How tall will the fence be?").
			Number("ft").Required().Range(1, 12)

		b.Ask("corner_lot", "Is the property on a corner lot?").
			YesNo().Required()

		b.Ask("sight_triangle", "Does the fence encroach on the sight triangle?").
			YesNo().WhenEquals("corner_lot", "yes")

		// The resulting registry can be used as a ports.TreeSource.
		source, err := b.Source()
		if err != nil {
			panic(err)
		}
		app, err := permitpath.New("", permitpath.WithSource(source))
		_ = app
		_ = err
	}
*/
package dsl
