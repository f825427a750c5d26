/*
Package template implements a streaming, marker-based template engine.

A template is an arbitrary character stream containing {{...}} markers:
sections ({{#name}}...{{/name}}) rendered once per element of a bound
sequence, inline includes ({{>name}}), comments ({{!...}}), and variables
({{path:modifier=arg}}) resolved against a hierarchical data dictionary.
Rendering is a single depth-first pass over the input; there is no parse
tree and no up-front validation, so errors surface lazily at the point
the offending marker is read.

The engine buffers everything it reads so that section bodies and includes
can be replayed from memory, which lets the template source be a forward-only
stream such as a network connection. Each call to Render owns its own buffer,
scope stack, and include cache, so a single Engine may be used from multiple
goroutines concurrently.

For the marker syntax, the built-in modifiers, and usage examples, see the
README.md file.
*/
package template
