// Package provider defines the provider-agnostic contract for streaming text
// generation plus the registry that turns a (provider id, credential, model)
// tuple into an open stream capability.
//
// Core goals:
//   - Unify vendor streaming APIs behind a single cancellable lazy sequence
//     (a delta channel closed on completion, an error channel for failures)
//   - Normalize failures into a small typed taxonomy (authentication,
//     network, provider, configuration) so the engine never branches on
//     vendor SDK error shapes
//   - Facilitate lightweight mocking for tests and keyless demo operation
//     (MockProvider)
//
// Concrete adapters (OpenAI-compatible REST, Anthropic) live in sub-packages
// so higher layers remain decoupled from vendor SDKs.
package provider
