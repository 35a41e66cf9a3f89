// Package chat provides the provider-agnostic conversation contract and its adapter implementations.
//
// Subpackages:
//   - fallback
//   - gemini
//   - xai
//   - ollama
//   - openai
//   - openrouter
//   - perplexity
package chat
