// Package pipeline assembles the goldmark engine for one renderer variant
// and the stages around it:
//   - source preprocessing (line endings, byte order mark)
//   - the engine itself: stock goldmark renderers as base handlers, the
//     extension middleware composed over them in a fixed order
//   - standalone document wrapping with theme and highlight CSS
//   - relative path rewriting for documents written away from their source
package pipeline
