// Package display makes model-generated text safe for markdown and LaTeX
// renderers.
//
// [Protect] runs in three phases. First, math spans ($...$ and $$...$$) and
// markdown table blocks are swapped for opaque placeholder tokens. Then the
// remaining text is rewritten: literal "\n" sequences become line breaks,
// bullet glyphs become markdown list markers, a "$" directly followed by a
// digit becomes the HTML entity "&#36;" so renderers do not read currency as
// a math delimiter, and line breaks are promoted to paragraph breaks.
// Finally every token is replaced by its original text, so protected spans
// come back byte-identical.
//
// Protect is idempotent and safe for concurrent use: all intermediate state
// lives in the call.
//
// [FromHTML] converts fields a model emitted as HTML into markdown, keeping
// math spans out of the converter's reach.
package display
