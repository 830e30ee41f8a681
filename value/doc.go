// Package value defines the dynamically typed values exposed to templates.
//
// A [Value] is a closed tagged union: null, bool, number, string, sequence or
// mapping. Anything that can describe itself to a [Visitor] satisfies
// [Serializer], which is all the template environment needs to store it.
// Plain Go values are adapted with [Of] (lazily) or [From] (eagerly).
//
// Host programs usually obtain values from one of three places:
//
//   - [Parse] infers a literal from a command-line string
//   - [Eval] runs an expr-lang expression
//   - [Decode] reads a YAML or JSON mapping
package value
